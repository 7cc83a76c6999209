package model

// City 地图提示标记可选的城市
type City struct {
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
}

// HintCities 固定的提示城市
var HintCities = []City{
	{Name: "Paris", Lat: 48.8566, Lon: 2.3522},
	{Name: "New York", Lat: 40.7128, Lon: -74.0060},
	{Name: "Sydney", Lat: -33.8688, Lon: 151.2093},
	{Name: "Tokyo", Lat: 35.6895, Lon: 139.6917},
	{Name: "Cairo", Lat: 30.0444, Lon: 31.2357},
}

type MarkerKind string

const (
	MarkerHint        MarkerKind = "hint"
	MarkerPlaceholder MarkerKind = "placeholder"
	MarkerScore       MarkerKind = "score"
	MarkerCredits     MarkerKind = "credits"
)

type Marker struct {
	Kind    MarkerKind `json:"kind"`
	Lat     float64    `json:"lat"`
	Lon     float64    `json:"lon"`
	Popup   string     `json:"popup"`
	Tooltip string     `json:"tooltip"`
}

// MapDocument 一次地图请求生成的完整文档，每次请求都重新生成
type MapDocument struct {
	CenterLat float64  `json:"centerLat"`
	CenterLon float64  `json:"centerLon"`
	Zoom      int      `json:"zoom"`
	Markers   []Marker `json:"markers"`
}

// Count 统计指定类型的标记数量
func (d *MapDocument) Count(kind MarkerKind) int {
	n := 0
	for _, m := range d.Markers {
		if m.Kind == kind {
			n++
		}
	}
	return n
}
