package types

// ModName pairs a modification symbol in the output alphabet with its
// long name.
type ModName struct {
	// example: m
	Short string `json:"short"`
	// example: 5mC
	Long string `json:"long"`
}

// ModelInfo describes the loaded model backend.
type ModelInfo struct {
	// Backend kind: compiled or trained.
	// example: trained
	Backend string `json:"backend"`
	// Compiled model name or trained model path.
	// example: /models/r941_min_high_g360.checkpoint
	Model string `json:"model"`
	// Every output symbol in network order.
	// example: AmCGT
	OutputAlphabet string `json:"output_alphabet"`
	// example: ACGT
	CanAlphabet string `json:"can_alphabet"`
	// Width of one network output row.
	// example: 42
	OutputSize int `json:"output_size"`
	// example: 1
	NMods int `json:"n_mods"`
	// Per canonical base modification counts.
	// example: [1,0,0,0]
	CanNmods []int `json:"can_nmods,omitempty"`
	// Canonical base to its modification symbols.
	CanBaseMods  map[string]string `json:"can_base_mods,omitempty"`
	ModLongNames []ModName         `json:"mod_long_names,omitempty"`
	// Device of each worker slot.
	// example: ["cuda:0","cuda:1"]
	Devices []string `json:"devices"`
}

// ReadResult summarizes the network output of one read.
type ReadResult struct {
	// example: /data/reads/batch_0.fast5
	Path string `json:"path"`
	// example: 0a1b2c3d-0000-4000-8000-000000000000
	ReadID string `json:"read_id,omitempty"`
	// Number of raw samples in the signal.
	// example: 40000
	Samples int `json:"samples"`
	// Number of output rows.
	// example: 8000
	Rows int `json:"rows"`
	// Columns in the canonical transition weights.
	// example: 40
	TransCols int `json:"trans_cols"`
	// Columns in the modification weights, zero when undivided.
	// example: 2
	ModCols int `json:"mod_cols,omitempty"`
	// example: cuda:0
	Device string `json:"device"`
	// Failure message when the read could not be processed.
	Error string `json:"error,omitempty"`
	// Error classification.
	// example: io
	ErrorKind string `json:"error_kind,omitempty"`
}
