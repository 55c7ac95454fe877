package document

// Orientation of a page.
type Orientation string

// Page orientations.
const (
	Portrait  Orientation = "portrait"
	Landscape Orientation = "landscape"
)

// PaperType is the printed background of a page.
type PaperType string

// Paper types.
const (
	Blank  PaperType = "blank"
	Lined  PaperType = "lined"
	Grid   PaperType = "grid"
	Dotted PaperType = "dotted"
)

// Margins in world units.
type Margins struct {
	Top, Right, Bottom, Left float64
}

// PageSettings holds everything about a page except its identity.
type PageSettings struct {
	Width, Height float64
	Orientation   Orientation
	PaperType     PaperType
	LineSpacing   float64
	GridSize      float64
	Margins       Margins
}

// Page default values.
const (
	DefaultPageWidth   = 816
	DefaultPageHeight  = 1056
	DefaultLineSpacing = 32
	DefaultGridSize    = 32
	DefaultMargin      = 48
)

// DefaultMargins returns the default page margins.
func DefaultMargins() Margins {
	return Margins{Top: DefaultMargin, Right: DefaultMargin, Bottom: DefaultMargin, Left: DefaultMargin}
}

// DefaultPageSettings returns the settings of a default page.
func DefaultPageSettings() PageSettings {
	return PageSettings{
		Width:       DefaultPageWidth,
		Height:      DefaultPageHeight,
		Orientation: Portrait,
		PaperType:   Blank,
		LineSpacing: DefaultLineSpacing,
		GridSize:    DefaultGridSize,
		Margins:     DefaultMargins(),
	}
}

// Page is one page of a document.
type Page struct {
	ID string
	PageSettings
}

// NewPage creates a page with a fresh ID.
func NewPage(s PageSettings) Page {
	return Page{ID: NewPageID(), PageSettings: s}
}
