package model

// File is a stored poster image. Path points at the bytes on local disk.
type File struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
	Path string `json:"path"`
}

// FileContent is a file read back from disk.
type FileContent struct {
	Name    string
	Content []byte
}
