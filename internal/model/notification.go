package model

// Category is the closed set of notice classifications used by the
// source portals. Records carrying any other value are rejected at load.
type Category string

const (
	CategoryPlatformUpgrade Category = "科技平台升级"
	CategoryTechCatalog     Category = "技术名录申报"
	CategoryProjectCall     Category = "项目申报"
	CategoryPolicyRelease   Category = "政策发布"
	CategoryConsultation    Category = "征求意见"
	CategoryStandardNotice  Category = "标准公告"
	CategoryAdminLicense    Category = "行政许可"
	CategoryOther           Category = "其他"
)

// Categories lists every valid category in display order.
var Categories = []Category{
	CategoryPlatformUpgrade,
	CategoryTechCatalog,
	CategoryProjectCall,
	CategoryPolicyRelease,
	CategoryConsultation,
	CategoryStandardNotice,
	CategoryAdminLicense,
	CategoryOther,
}

func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Attachment is a downloadable document attached to a notice.
type Attachment struct {
	Name string `json:"name" validate:"required"`
	URL  string `json:"url" validate:"required"`
	Size string `json:"size,omitempty"`
}

// Notification is a single government notice. Dates are calendar dates
// in ISO form (2006-01-02); comparisons ignore time of day throughout.
// IsFavorited, Notes and Tags are user-authored state layered onto the
// scraped fields and survive every mutation of other fields.
type Notification struct {
	ID             string       `json:"id" validate:"required"`
	Title          string       `json:"title" validate:"required"`
	Department     string       `json:"department" validate:"required"`
	DepartmentCode string       `json:"departmentCode" validate:"required"`
	PublishDate    string       `json:"publishDate" validate:"required"`
	Deadline       string       `json:"deadline,omitempty"`
	Category       Category     `json:"category" validate:"required"`
	Summary        string       `json:"summary"`
	Content        string       `json:"content"`
	OriginalURL    string       `json:"originalUrl" validate:"omitempty,url"`
	Attachments    []Attachment `json:"attachments,omitempty"`
	Tags           []string     `json:"tags"`
	IsFavorited    bool         `json:"isFavorited"`
	Notes          string       `json:"notes,omitempty"`
	Keywords       []string     `json:"keywords"`
	FundingAmount  string       `json:"fundingAmount,omitempty"`
}

// Clone returns a deep copy so callers can hand records out without
// aliasing the store's slices. Empty slices stay empty rather than
// collapsing to nil, so a cloned record serializes the same way.
func (n Notification) Clone() Notification {
	out := n
	if n.Tags != nil {
		out.Tags = make([]string, len(n.Tags))
		copy(out.Tags, n.Tags)
	}
	if n.Keywords != nil {
		out.Keywords = make([]string, len(n.Keywords))
		copy(out.Keywords, n.Keywords)
	}
	if n.Attachments != nil {
		out.Attachments = make([]Attachment, len(n.Attachments))
		copy(out.Attachments, n.Attachments)
	}
	return out
}

func (n *Notification) HasTag(tag string) bool {
	for _, t := range n.Tags {
		if t == tag {
			return true
		}
	}
	return false
}
