package prefabs

type PositionComponentSpec struct {
	X         float64 `yaml:"x"`
	Y         float64 `yaml:"y"`
	Direction float64 `yaml:"direction"`
}

type ExtentsComponentSpec struct {
	HalfWidth  float64 `yaml:"half_width"`
	HalfHeight float64 `yaml:"half_height"`
}

type FilterSpec struct {
	Category uint32 `yaml:"category"`
	Mask     uint32 `yaml:"mask"`
	Group    int32  `yaml:"group"`
}

type CollisionComponentSpec struct {
	Sensor             bool        `yaml:"sensor"`
	Filter             *FilterSpec `yaml:"filter"`
	ResponseBiasX      float64     `yaml:"response_bias_x"`
	ResponseBiasY      float64     `yaml:"response_bias_y"`
	OffsetX            float64     `yaml:"offset_x"`
	OffsetY            float64     `yaml:"offset_y"`
	LimitToStaticCheck bool        `yaml:"limit_to_static_check"`
}

type BodyComponentSpec struct {
	Material          string   `yaml:"material"`
	Mass              float64  `yaml:"mass"`
	MassFromVolume    bool     `yaml:"mass_from_volume"`
	Damping           float64  `yaml:"damping"`
	GlobalForceFactor *float64 `yaml:"global_force_factor"`
	MaxVelocity       float64  `yaml:"max_velocity"`
	Bounces           *int     `yaml:"bounces"`
	Bullet            bool     `yaml:"bullet"`
	BulletPolicy      string   `yaml:"bullet_policy"`
	VelocityX         float64  `yaml:"velocity_x"`
	VelocityY         float64  `yaml:"velocity_y"`
}

type AgeComponentSpec struct {
	TTL float64 `yaml:"ttl"`
}

type HealthComponentSpec struct {
	Max      float64 `yaml:"max"`
	Current  float64 `yaml:"current"`
	Recovery float64 `yaml:"recovery"`
}

type DestroyComponentSpec struct {
	Delay int `yaml:"delay"`
}

type CollisionCountComponentSpec struct {
	Limit int `yaml:"limit"`
}

type EnvironmentForceComponentSpec struct {
	ForceX   float64 `yaml:"force_x"`
	ForceY   float64 `yaml:"force_y"`
	Massless bool    `yaml:"massless"`
	Damping  float64 `yaml:"damping"`
}

type ContactScriptComponentSpec struct {
	Script   string         `yaml:"script"`
	Throttle float64        `yaml:"throttle"`
	Params   map[string]any `yaml:"params"`
}

type SpawnerComponentSpec struct {
	Prefab    string  `yaml:"prefab"`
	Interval  float64 `yaml:"interval"`
	VelocityX float64 `yaml:"velocity_x"`
	VelocityY float64 `yaml:"velocity_y"`
	OffsetX   float64 `yaml:"offset_x"`
	OffsetY   float64 `yaml:"offset_y"`
	Limit     int     `yaml:"limit"`
}

type DebugColorComponentSpec struct {
	Color YAMLColor `yaml:"color"`
}
