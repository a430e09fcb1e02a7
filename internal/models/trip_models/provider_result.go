package trip_models

// Origin records which path produced the items of a ProviderResult.
type Origin string

const (
	OriginPrimary           Origin = "primary"
	OriginGeneratedFallback Origin = "generated_fallback"
	OriginEmpty             Origin = "empty"
)

type ProviderResult[T any] struct {
	Items  []T    `json:"items"`
	Origin Origin `json:"origin"`
}

func EmptyResult[T any]() ProviderResult[T] {
	return ProviderResult[T]{Items: []T{}, Origin: OriginEmpty}
}

func (r ProviderResult[T]) Len() int {
	return len(r.Items)
}

func (r ProviderResult[T]) Degraded() bool {
	return r.Origin != OriginPrimary
}
