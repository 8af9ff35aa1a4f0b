package signal

// Layout of a single-read container.
const (
	RawReadsGroup = "/Raw/Reads"
	SignalDataset = "Signal"
	ReadIDAttr    = "read_id"
)

// Opener opens read containers.
type Opener interface {
	Open(path string) (File, error)
}

// File is an open read container. Paths are absolute within the container.
type File interface {
	// Children lists the names of the members of group in storage order.
	Children(group string) ([]string, error)
	// ReadFloat32 reads a numeric dataset, converting it to float32.
	ReadFloat32(dataset string) ([]float32, error)
	// StringAttr decodes a string attribute attached to object.
	StringAttr(object, name string) (string, error)
	Close() error
}

// OpenerFunc adapts a function to the Opener interface.
type OpenerFunc func(path string) (File, error)

func (f OpenerFunc) Open(path string) (File, error) { return f(path) }

// DefaultOpener is the container backend compiled into this binary.
func DefaultOpener() Opener { return hdf5Opener{} }
