package schema

// CatalogPackageTable represents the 'catalog.package' table
type CatalogPackageTable struct {
	Table                string
	ID                   string
	Slug                 string
	Name                 string
	Description          string
	LongDescription      string
	Location             string
	TourType             string
	ComfortLevel         string
	Accommodation        string
	DifficultyLevel      string
	TourOperator         string
	Duration             string
	Price                string
	Rating               string
	ReviewCount          string
	GroupSizeMin         string
	GroupSizeMax         string
	GroupSize            string
	Featured             string
	Popular              string
	Availability         string
	Status               string
	IsDraft              string
	Image                string
	Gallery              string
	Itinerary            string
	Pricing              string
	AccommodationDetails string
	Transportation       string
	Inclusions           string
	GettingThere         string
	Policies             string
	BestSeason           string
	Destinations         string
	Highlights           string
	Activities           string
	IncludedActivities   string
	TourFeatures         string
	CreatedAt            string
	UpdatedAt            string
	PublishedAt          string
}

// CatalogPackage is the schema definition for catalog.package
var CatalogPackage = CatalogPackageTable{
	Table:                "catalog.package",
	ID:                   "id",
	Slug:                 "slug",
	Name:                 "name",
	Description:          "description",
	LongDescription:      "longdescription",
	Location:             "location",
	TourType:             "tourtype",
	ComfortLevel:         "comfortlevel",
	Accommodation:        "accommodation",
	DifficultyLevel:      "difficultylevel",
	TourOperator:         "touroperator",
	Duration:             "duration",
	Price:                "price",
	Rating:               "rating",
	ReviewCount:          "reviewcount",
	GroupSizeMin:         "groupsizemin",
	GroupSizeMax:         "groupsizemax",
	GroupSize:            "groupsize",
	Featured:             "featured",
	Popular:              "popular",
	Availability:         "availability",
	Status:               "status",
	IsDraft:              "isdraft",
	Image:                "image",
	Gallery:              "gallery",
	Itinerary:            "itinerary",
	Pricing:              "pricing",
	AccommodationDetails: "accommodationdetails",
	Transportation:       "transportation",
	Inclusions:           "inclusions",
	GettingThere:         "gettingthere",
	Policies:             "policies",
	BestSeason:           "bestseason",
	Destinations:         "destinations",
	Highlights:           "highlights",
	Activities:           "activities",
	IncludedActivities:   "includedactivities",
	TourFeatures:         "tourfeatures",
	CreatedAt:            "createdat",
	UpdatedAt:            "updatedat",
	PublishedAt:          "publishedat",
}

func (t CatalogPackageTable) Columns() []string {
	return []string{
		t.ID, t.Slug, t.Name, t.Description, t.LongDescription, t.Location,
		t.TourType, t.ComfortLevel, t.Accommodation, t.DifficultyLevel,
		t.TourOperator, t.Duration, t.Price, t.Rating, t.ReviewCount,
		t.GroupSizeMin, t.GroupSizeMax, t.GroupSize, t.Featured, t.Popular,
		t.Availability, t.Status, t.IsDraft, t.Image, t.Gallery, t.Itinerary,
		t.Pricing, t.AccommodationDetails, t.Transportation, t.Inclusions,
		t.GettingThere, t.Policies, t.BestSeason, t.Destinations, t.Highlights,
		t.Activities, t.IncludedActivities, t.TourFeatures, t.CreatedAt,
		t.UpdatedAt, t.PublishedAt,
	}
}
