package ports

// MediaStore keeps the audio files of a local catalog
type MediaStore interface {
	// Import copies the file at src into the store and returns the path to
	// record on the asset
	Import(src string) (string, error)

	// Remove deletes a previously imported file. Missing files are not an error.
	Remove(path string) error
}
