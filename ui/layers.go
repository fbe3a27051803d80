package ui

import(
	"encoding/json"
	"html/template"
)

// A TileLayer is a base map the user can pick from the layer control.
type TileLayer struct {
	Name        string `json:"name"`
	URL         string `json:"url"`
	Attribution string `json:"attribution"`
	Subdomains  string `json:"subdomains,omitempty"`
	Default     bool   `json:"default,omitempty"`
}

const(
	kOSMAttribution = `Map data &copy; <a href="//openstreetmap.org">OpenStreetMap</a> contributors, <a href="//creativecommons.org/licenses/by-sa/2.0/">CC-BY-SA</a>`
	kThunderforestAttribution = `Maps © <a href="http://www.thunderforest.com/">Thunderforest</a>, Data © <a href="//openstreetmap.org">OpenStreetMap</a> contributors`
	kMapQuestAttribution = `Tiles Courtesy of <a href="http://www.mapquest.com/" target="_blank">MapQuest</a> <img src="http://developer.mapquest.com/content/osm/mq_logo.png">, Data © <a href="//openstreetmap.org">OpenStreetMap</a> contributors`
)

func ThunderforestTileLayer(label, name string) TileLayer {
	return TileLayer{
		Name: label,
		URL: "http://{s}.tile.thunderforest.com/" + name + "/{z}/{x}/{y}.png",
		Attribution: kThunderforestAttribution,
		Subdomains: "abc",
	}
}

func MapQuestTileLayer(label, name string) TileLayer {
	attribution := kMapQuestAttribution
	if name == "sat" {
		attribution += ", Portions Courtesy NASA/JPL-Caltech and U.S. Depart. of Agriculture, Farm Service Agency"
	}
	return TileLayer{
		Name: label,
		URL: "http://otile{s}.mqcdn.com/tiles/1.0.0/" + name + "/{z}/{x}/{y}.png",
		Attribution: attribution,
		Subdomains: "1234",
	}
}

// BaseLayers lists the base maps, the default one first.
func BaseLayers() []TileLayer {
	return []TileLayer{
		{
			Name: "OpenStreetMap",
			URL: "//{s}.tile.openstreetmap.org/{z}/{x}/{y}.png",
			Attribution: kOSMAttribution,
			Default: true,
		},
		ThunderforestTileLayer("Landscape", "landscape"),
		ThunderforestTileLayer("Transport", "transport"),
		ThunderforestTileLayer("Transport Dark", "transport-dark"),
		ThunderforestTileLayer("OpenCycleMap", "cycle"),
		ThunderforestTileLayer("Outdoors", "outdoors"),
		MapQuestTileLayer("MapQuest-OSM", "map"),
		MapQuestTileLayer("MapQuest Open Aerial", "sat"),
	}
}

// {{{ TileLayersJSVar

func TileLayersJSVar(layers []TileLayer) template.JS {
	b,err := json.Marshal(layers)
	if err != nil { return template.JS("[]") }
	return template.JS(b)
}

// }}}
