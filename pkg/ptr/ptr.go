package ptr

// Ptr возвращает указатель на копию значения
func Ptr[T any](v T) *T {
	return &v
}

// Value разыменовывает указатель или возвращает def, если он nil
func Value[T any](p *T, def T) T {
	if p == nil {
		return def
	}
	return *p
}
