package models

// Venue is a bookable court listing. JSON names follow what the map UI sends.
type Venue struct {
	ID              int         `json:"id" db:"id"`
	Name            string      `json:"name" db:"name"`
	Description     string      `json:"description" db:"description"`
	Address         string      `json:"address" db:"address"`
	MTRStation      string      `json:"mtrStation" db:"mtr_station"`
	MTRExit         string      `json:"mtrExit" db:"mtr_exit"`
	WalkingDistance int         `json:"walkingDistance" db:"walking_distance"`
	CeilingHeight   float64     `json:"ceilingHeight" db:"ceiling_height"`
	StartingPrice   int         `json:"startingPrice" db:"starting_price"`
	Pricing         Pricing     `json:"pricing" db:"pricing"`
	Images          StringList  `json:"images" db:"images"`
	Amenities       StringList  `json:"amenities" db:"amenities"`
	WhatsApp        string      `json:"whatsapp" db:"whatsapp"`
	SocialLink      *string     `json:"socialLink" db:"social_link"`
	OrgIcon         *string     `json:"orgIcon" db:"org_icon"`
	Coordinates     Coordinates `json:"coordinates" db:"coordinates"`
	SortOrder       *int        `json:"sort_order" db:"sort_order"`

	// Only ever serialized for a super admin; stripped otherwise.
	AdminPassword *string `json:"admin_password,omitempty" db:"admin_password"`

	MembershipEnabled     bool    `json:"membership_enabled" db:"membership_enabled"`
	MembershipDescription *string `json:"membership_description" db:"membership_description"`
	MembershipJoinLink    *string `json:"membership_join_link" db:"membership_join_link"`

	SportData []SportLink `json:"sport_data" db:"-"`
}

// SportLink is one entry of a venue's sport associations.
type SportLink struct {
	SportID   int     `json:"sport_id" db:"sport_id"`
	Name      string  `json:"name" db:"name"`
	NameZh    *string `json:"name_zh" db:"name_zh"`
	Slug      string  `json:"slug" db:"slug"`
	SortOrder int     `json:"sort_order" db:"sort_order"`
}

// AdminCredential is the stored admin password of one venue.
type AdminCredential struct {
	VenueID  int
	Password string
}
