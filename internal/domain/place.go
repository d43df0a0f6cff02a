package domain

import "strconv"

// Place - кандидат на остановку: внешнее заведение с открытым набором атрибутов.
// Атрибуты опциональны, отсутствие ключа никогда не является ошибкой.
type Place struct {
	ID         string            `json:"id"`
	Name       string            `json:"name"`
	Location   GeoPoint          `json:"location"`
	Attributes map[string]string `json:"attributes,omitempty"`
}

// Attr возвращает значение атрибута или пустую строку
func (p Place) Attr(key string) string {
	if p.Attributes == nil {
		return ""
	}
	return p.Attributes[key]
}

// Rating возвращает числовой рейтинг из атрибутов, если он есть
func (p Place) Rating() (float64, bool) {
	raw := p.Attr("rating")
	if raw == "" {
		return 0, false
	}
	r, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return r, true
}

// Cuisine возвращает атрибут cuisine
func (p Place) Cuisine() string {
	return p.Attr("cuisine")
}

// AttributeCount возвращает число заполненных атрибутов
func (p Place) AttributeCount() int {
	return len(p.Attributes)
}
