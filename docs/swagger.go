// Package docs Trip Planner API.
//
// Сервис планирования автомобильных поездок с остановками на еду.
// Считает рекомендованное время выезда назад от желаемого прибытия,
// находит точки маршрута, попадающие в окна приёма пищи, и ранжирует
// заведения рядом с ними с учётом крюка и предпочтений пользователя.
//
// Основные возможности:
// - Планирование поездки с окнами завтрака, обеда и ужина
// - Оценка крюка до кандидатов через матрицу длительностей OSRM
// - Персонализация ранжирования по сохранённому профилю
// - Архив построенных планов
//
//	Schemes: http, https
//	BasePath: /
//	Version: 1.0.0
//
//	Consumes:
//	- application/json
//
//	Produces:
//	- application/json
//
// swagger:meta
package docs
