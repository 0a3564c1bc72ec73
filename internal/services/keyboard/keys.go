package keyboard

// CtrlKey returns the byte a terminal sends for Ctrl held with k.
func CtrlKey(k byte) byte {
	return k & 0x1f
}

const CtrlQ = 0x11
