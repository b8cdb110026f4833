package component

// FlightModel holds the player's aerodynamic tuning and flight telemetry.
type FlightModel struct {
	MaxThrust       float64
	ThrottleRate    float64 // throttle units per second at full axis input
	PitchRate       float64 // degrees per second squared
	RollRate        float64
	YawRate         float64
	GroundSteerRate float64
	Lift            float64
	Drag            float64
	GroundProbe     float64
	CrashSpeed      float64
	CrashDamage     float64

	Throttle float64 // [0, 1]
	OnGround bool
	// TouchdownSink is the sink rate (cm/s) the ground absorbed during the
	// last physics step, read and cleared by the next ground check.
	TouchdownSink float64
	Airspeed float64 // km/h
	Altitude float64 // m
}

// Controls is the latest pilot input. Axes are in [-1, 1].
type Controls struct {
	Throttle    float64
	Pitch       float64
	Roll        float64
	Yaw         float64
	GroundSteer float64
	Fire        bool
	FireMissile bool
}
