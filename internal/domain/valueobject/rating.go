package valueobject

const (
	MinRating = 1
	MaxRating = 5
)

type Rating struct {
	Value float64
}

func NewRating(value float64) Rating {
	return Rating{Value: value}
}

func (r Rating) IsValid() bool {
	return r.Value >= MinRating && r.Value <= MaxRating
}
