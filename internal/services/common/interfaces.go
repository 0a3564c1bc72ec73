package common

// KeyReader yields one raw input byte per call.
type KeyReader interface {
	ReadKey() (byte, error)
}

// Renderer draws the visible area.
type Renderer interface {
	Render(rows int)
	Clear()
}

// Restorer returns the terminal to the configuration it had before the editor started.
type Restorer interface {
	Restore() error
}
