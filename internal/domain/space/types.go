package space

type Category string

const (
	CategoryDesk          Category = "DESK"
	CategoryMeetingRoom   Category = "MEETING_ROOM"
	CategoryPrivateOffice Category = "PRIVATE_OFFICE"
)

func (c Category) String() string {
	return string(c)
}

func (c Category) IsValid() bool {
	switch c {
	case CategoryDesk, CategoryMeetingRoom, CategoryPrivateOffice:
		return true
	default:
		return false
	}
}

func NewCategory(s string) (Category, error) {
	category := Category(s)
	if !category.IsValid() {
		return "", ErrInvalidCategory
	}
	return category, nil
}
