package lookupdest

import "time"

// I2CP Lookup Constants
//
// This file contains the constants the router side of the I2CP lookup
// exchange needs: the message types it consumes and produces, the HostReply
// result codes, and the address formats it recognizes.

// I2CP Message Type Constants
const (
	I2CP_MSG_DEST_LOOKUP uint8 = 34
	I2CP_MSG_DEST_REPLY  uint8 = 35
	I2CP_MSG_HOST_LOOKUP uint8 = 38
	I2CP_MSG_HOST_REPLY  uint8 = 39
)

const (
	I2CP_MESSAGE_SIZE = 0xffff
	// Session ID 0xFFFF is reserved by I2CP for "no session" operations.
	// It is still a present session token for the purpose of reply correlation.
	I2CP_SESSION_ID_NONE SessionID = 0xFFFF
)

// HostReply Result Codes (I2CP Proposal 167)
const (
	HOST_REPLY_SUCCESS                   uint8 = 0 // Lookup successful
	HOST_REPLY_FAILURE                   uint8 = 1 // General lookup failure
	HOST_REPLY_PASSWORD_REQUIRED         uint8 = 2 // Password required for encrypted LeaseSet (since 0.9.43)
	HOST_REPLY_PRIVATE_KEY_REQUIRED      uint8 = 3 // Private key required for per-client auth (since 0.9.43)
	HOST_REPLY_PASSWORD_AND_KEY_REQUIRED uint8 = 4 // Both password and key required (since 0.9.43)
	HOST_REPLY_DECRYPTION_FAILURE        uint8 = 5 // Failed to decrypt LeaseSet (since 0.9.43)
	HOST_REPLY_LEASESET_LOOKUP_FAILURE   uint8 = 6 // LeaseSet not found in network database (since 0.9.66)
	HOST_REPLY_LOOKUP_TYPE_UNSUPPORTED   uint8 = 7 // Lookup type not supported by router (since 0.9.66)
)

// HostLookup Request Types
const (
	HOST_LOOKUP_TYPE_HASH                  uint8 = 0 // Basic hash lookup (since 0.9.11)
	HOST_LOOKUP_TYPE_HOSTNAME              uint8 = 1 // Basic hostname lookup (since 0.9.11)
	HOST_LOOKUP_TYPE_HASH_WITH_OPTIONS     uint8 = 2 // Hash + LeaseSet options mapping (since 0.9.66)
	HOST_LOOKUP_TYPE_HOSTNAME_WITH_OPTIONS uint8 = 3 // Hostname + LeaseSet options mapping (since 0.9.66)
	HOST_LOOKUP_TYPE_DEST_WITH_OPTIONS     uint8 = 4 // Destination + LeaseSet options mapping (since 0.9.66)
)

// Address Constants
const (
	HASH_LENGTH = 32
	B32_SUFFIX  = ".b32.i2p"

	// Names shorter than this are never base32 addresses; a 32-byte hash
	// encodes to 52 characters plus the suffix.
	MIN_B32_NAME_LENGTH = 60

	// Smallest decoded length of a blinded ("b33") address: flags, two
	// sig types and a 32-byte key.
	MIN_BLINDED_ADDRESS_LENGTH = 35
)

// Lookup Defaults
const (
	DEFAULT_LOOKUP_TIMEOUT       = 15 * time.Second
	NoRequestID            int64 = -1

	// Jobs running longer than this are logged.
	slowJobThreshold = time.Second
)

// Certificate Type Constants
const (
	CERTIFICATE_NULL uint8 = 0
	CERTIFICATE_KEY  uint8 = 5
)

// Destination Field Sizes
const (
	PUB_KEY_SIZE     = 256
	SIGNING_KEY_SIZE = 128
	DEST_SIZE        = 4096
)

// Signature Types
const (
	SIG_TYPE_ED25519        uint16 = 7
	SIG_TYPE_REDDSA_ED25519 uint16 = 11
	ENC_TYPE_X25519         uint16 = 4
)

// Blinded Address Flags (Proposal 149)
const (
	BLINDED_FLAG_TWO_BYTE_SIGTYPES uint8 = 0x01
	BLINDED_FLAG_SECRET            uint8 = 0x02
	BLINDED_FLAG_PER_CLIENT_AUTH   uint8 = 0x04
	BLINDED_FLAG_RESERVED_MASK     uint8 = 0xf8
)

// Log Levels
const (
	DEBUG   = 1 << 4
	INFO    = 1 << 5
	WARNING = 1 << 6
	ERROR   = 1 << 7
	FATAL   = 1 << 8
)
