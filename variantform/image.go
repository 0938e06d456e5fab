package variantform

import "storefront-admin/preview"

// File is a locally chosen file awaiting upload.
type File struct {
	Filename    string
	ContentType string
	Data        []byte
}

type ImageState int

const (
	ImageEmpty ImageState = iota
	ImagePersisted
	ImagePending
)

func (s ImageState) String() string {
	switch s {
	case ImagePersisted:
		return "persisted"
	case ImagePending:
		return "pending"
	default:
		return "empty"
	}
}

// ImageSlot holds exactly one image source: nothing, an image the API already
// stores, or a new file with its preview.
type ImageSlot struct {
	State        ImageState
	PersistedURL string
	File         *File
	Preview      *preview.Handle
}

func persistedSlot(url string) ImageSlot {
	if url == "" {
		return ImageSlot{}
	}
	return ImageSlot{State: ImagePersisted, PersistedURL: url}
}

// IsNew reports whether the slot carries a file that replaces whatever the API has.
func (s ImageSlot) IsNew() bool {
	return s.State == ImagePending && s.File != nil
}

// PreviewURL is what the dashboard should display for the slot.
func (s ImageSlot) PreviewURL() string {
	switch s.State {
	case ImagePending:
		if s.Preview != nil {
			return s.Preview.URL()
		}
	case ImagePersisted:
		return s.PersistedURL
	}
	return ""
}

// attach moves the slot to Pending. A superseded preview is released here,
// before the new slot is handed back.
func (s ImageSlot) attach(reg *preview.Registry, f File) ImageSlot {
	file := f
	next := ImageSlot{
		State:   ImagePending,
		File:    &file,
		Preview: reg.Create(f.Filename, f.ContentType, f.Data),
	}
	s.release()
	return next
}

func (s ImageSlot) release() {
	if s.Preview != nil {
		s.Preview.Release()
	}
}
