package protocol

// ParseWindow tags every byte of a received window.
// The window must contain exactly WindowSize(kind) bytes.
//
// Block is the vector block the window belongs to; pass NoBlock for windows
// that are not tied to a block.
func ParseWindow(kind FrameKind, block int, data []byte) ([]Frame, error) {
	want := WindowSize(kind)
	if want == 0 || len(data) != want {
		return nil, &WindowSizeError{Kind: kind, Expected: want, Got: len(data)}
	}

	phase := kind.Phase()
	frames := make([]Frame, len(data))
	for i, b := range data {
		frames[i] = Frame{
			Kind:  kind,
			Phase: phase,
			Block: block,
			Index: i,
			Value: b,
		}
	}

	return frames, nil
}

// ParseCountEcho parses the block count acknowledgement.
//
// Data format (1 byte):
//
//	[COUNT_ECHO]
func ParseCountEcho(data []byte) (byte, error) {
	if len(data) != CountEchoWindowSize {
		return 0, &WindowSizeError{Kind: FrameCountEcho, Expected: CountEchoWindowSize, Got: len(data)}
	}
	return data[0], nil
}

// FrameValues returns the byte values of the frames in order.
func FrameValues(frames []Frame) []byte {
	values := make([]byte, len(frames))
	for i, f := range frames {
		values[i] = f.Value
	}
	return values
}
