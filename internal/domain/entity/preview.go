package entity

// SelectedImage describes the image the user picked. The bytes themselves
// live only in the preview store.
type SelectedImage struct {
	Name        string // original file name, may be empty
	ContentType string // declared content type
	Size        int    // size in bytes as uploaded
}

// Preview is a displayable rendition of the selected image.
type Preview struct {
	ID          string
	ContentType string
	Width       int
	Height      int
	Size        int
}

// RenderedPreview is what a preview renderer produces before it is stored.
type RenderedPreview struct {
	Data        []byte
	ContentType string
	Width       int
	Height      int
}
