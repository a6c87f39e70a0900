package schema

// CatalogProposalTable represents the 'catalog.proposal' table
type CatalogProposalTable struct {
	Table       string
	ID          string
	Reference   string
	FullName    string
	Email       string
	Phone       string
	Country     string
	Activities  string
	Days        string
	Budget      string
	ArrivalDate string
	Companion   string
	Adults      string
	Teens       string
	Children    string
	AgeRanges   string
	Message     string
	Status      string
	CreatedAt   string
	UpdatedAt   string
}

// CatalogProposal is the schema definition for catalog.proposal
var CatalogProposal = CatalogProposalTable{
	Table:       "catalog.proposal",
	ID:          "id",
	Reference:   "reference",
	FullName:    "fullname",
	Email:       "email",
	Phone:       "phone",
	Country:     "country",
	Activities:  "activities",
	Days:        "days",
	Budget:      "budget",
	ArrivalDate: "arrivaldate",
	Companion:   "companion",
	Adults:      "adults",
	Teens:       "teens",
	Children:    "children",
	AgeRanges:   "ageranges",
	Message:     "message",
	Status:      "status",
	CreatedAt:   "createdat",
	UpdatedAt:   "updatedat",
}

func (t CatalogProposalTable) Columns() []string {
	return []string{
		t.ID, t.Reference, t.FullName, t.Email, t.Phone, t.Country,
		t.Activities, t.Days, t.Budget, t.ArrivalDate, t.Companion,
		t.Adults, t.Teens, t.Children, t.AgeRanges, t.Message, t.Status,
		t.CreatedAt, t.UpdatedAt,
	}
}
