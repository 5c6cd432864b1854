package terminal

// pollTimeoutMs bounds one Backend.Read so a stop request or a pending lone ESC
// is noticed promptly
const pollTimeoutMs = 100

// Backend is the platform device under a Terminal
type Backend interface {
	// Init switches the device to raw mode
	Init() error
	// Fini restores the mode saved by Init
	Fini()

	Size() (width, height int)

	Write(p []byte) (int, error)

	// Read waits for input until stopCh closes or the poll times out.
	// (nil, nil) means nothing arrived; io.EOF means input was closed.
	Read(stopCh <-chan struct{}) ([]byte, error)

	// SetResizeHandler registers the callback invoked with each new size
	SetResizeHandler(handler func(width, height int))
}
