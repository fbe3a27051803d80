package ui

import(
	"html/template"
	"strconv"
)

func TemplateFuncMap() template.FuncMap {
	return template.FuncMap{
		"add": templateAdd,
		"feet": templateFeet,
	}
}

func templateAdd(a int, b int) int { return a + b }
func templateFeet(f float64) string { return strconv.FormatFloat(f, 'f', -1, 64) + "′" }
