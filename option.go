package tracker

// Option is an explicitly present or absent value.
// Views must go through Get instead of testing zero values.
type Option[T any] struct {
	val T
	ok  bool
}

func Some[T any](val T) Option[T] {
	return Option[T]{val: val, ok: true}
}

func None[T any]() Option[T] {
	return Option[T]{}
}

// FromPtr converts a nullable decoded field.
func FromPtr[T any](val *T) Option[T] {
	if val == nil {
		return None[T]()
	}
	return Some(*val)
}

func (o Option[T]) Get() (T, bool) {
	return o.val, o.ok
}

func (o Option[T]) IsSome() bool {
	return o.ok
}

// OrElse returns the value, or def if absent.
func (o Option[T]) OrElse(def T) T {
	if !o.ok {
		return def
	}
	return o.val
}
