package lookupdest

// MessageTypeName returns a human-readable name for the lookup message types.
// This is useful for wire-level debugging and logging
func MessageTypeName(msgType uint8) string {
	switch msgType {
	case I2CP_MSG_DEST_LOOKUP:
		return "DestLookup (deprecated)"
	case I2CP_MSG_DEST_REPLY:
		return "DestReply (deprecated)"
	case I2CP_MSG_HOST_LOOKUP:
		return "HostLookup"
	case I2CP_MSG_HOST_REPLY:
		return "HostReply"
	default:
		return "Unknown"
	}
}
