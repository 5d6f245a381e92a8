package shop

type Option struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Price VND    `json:"price"`
}

var Sizes = []Option{
	{ID: "S", Name: "Size S", Price: 0},
	{ID: "M", Name: "Size M", Price: 5000},
	{ID: "L", Name: "Size L", Price: 10000},
}

var Toppings = []Option{
	{ID: "tp1", Name: "Trân châu trắng", Price: 5000},
	{ID: "tp2", Name: "Thạch đào", Price: 5000},
	{ID: "tp3", Name: "Kem cheese", Price: 10000},
}

const (
	TemperatureHot      = "Nóng"
	TemperatureIced     = "Đá"
	TemperatureIceAside = "Đá riêng"
)

var (
	Temperatures = []string{TemperatureHot, TemperatureIced, TemperatureIceAside}
	SugarLevels  = []string{"0%", "30%", "50%", "70%", "100%"}
	IceLevels    = []string{"0%", "30%", "50%", "70%", "100%"}
)

// FindOption matches by id or display name.
func FindOption(options []Option, key string) (Option, bool) {
	for _, o := range options {
		if o.ID == key || o.Name == key {
			return o, true
		}
	}
	return Option{}, false
}

func Contains(values []string, v string) bool {
	for _, x := range values {
		if x == v {
			return true
		}
	}
	return false
}
