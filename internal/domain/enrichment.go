package domain

// SkillStats is the market data the skill-stats provider reports for one
// skill slug. It is never persisted.
type SkillStats struct {
	Slug            string
	Name            string
	CategoryKey     string
	PopularityScore int
	AverageSalary   int
}

// PackingItem is one entry of the packing list the packing provider returns
// for a trip category. It is never persisted.
type PackingItem struct {
	Name          string
	WeightInGrams int
	Quantity      int
	Description   string
	Category      string
	BuyingOptions []BuyingOption
}

// BuyingOption is a shop offering a PackingItem.
type BuyingOption struct {
	ShopName string
	ShopURL  string
	Price    float64
}

// GuideTotal is the summed price of every trip led by one guide.
type GuideTotal struct {
	GuideID    int64
	TotalPrice float64
}

// PackingWeight is the total weight of a trip's packing list.
type PackingWeight struct {
	TripID           int64
	Category         TripCategory
	TotalWeightGrams int
	TotalWeightKg    float64
}

// TopCandidate is the candidate with the highest mean skill popularity.
type TopCandidate struct {
	CandidateID            int64
	AveragePopularityScore float64
}
