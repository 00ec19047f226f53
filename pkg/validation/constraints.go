package validation

// TextBounds задает допустимую длину текстового поля в символах.
type TextBounds struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// IntBound задает нижнюю границу целого числа.
type IntBound struct {
	Min int `json:"min"`
}

// RangeBound задает диапазон целых чисел.
type RangeBound struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// CollectionBounds задает ограничения на список тегов.
type CollectionBounds struct {
	MinItems     int `json:"minItems"`
	MaxItems     int `json:"maxItems"`
	MaxTagLength int `json:"maxTagLength"`
}

// Registry содержит именованные ограничения, общие для всех схем.
type Registry struct {
	ShortText    TextBounds       `json:"shortText"`
	MediumText   TextBounds       `json:"mediumText"`
	LongText     TextBounds       `json:"longText"`
	VeryLongText TextBounds       `json:"veryLongText"`
	PositiveInt  IntBound         `json:"positiveInt"`
	Pagination   RangeBound       `json:"pagination"`
	Tags         CollectionBounds `json:"tags"`
}

// registry не изменяется после инициализации пакета.
var registry = Registry{
	ShortText:    TextBounds{Min: 1, Max: 100},   // заголовки, имена
	MediumText:   TextBounds{Min: 1, Max: 255},   // описания
	LongText:     TextBounds{Min: 1, Max: 1000},  // bio, комментарии
	VeryLongText: TextBounds{Min: 1, Max: 50000}, // тело статьи
	PositiveInt:  IntBound{Min: 1},
	Pagination:   RangeBound{Min: 0, Max: 100},
	Tags:         CollectionBounds{MinItems: 0, MaxItems: 10, MaxTagLength: 20},
}

// Constraints возвращает копию реестра ограничений.
func Constraints() Registry {
	return registry
}
