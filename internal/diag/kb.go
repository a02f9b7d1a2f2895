package diag

// Candidate is a single probable part with its base score and the reason it
// is suspected.
type Candidate struct {
	Part   string  `yaml:"part"`
	Base   float64 `yaml:"base"`
	Reason string  `yaml:"reason"`
}

// FaultCodeRule maps a fault-code prefix to the candidates it seeds. Rules
// are kept in an ordered slice so seeding order is deterministic when
// several prefixes match.
type FaultCodeRule struct {
	Prefix     string      `yaml:"prefix"`
	Candidates []Candidate `yaml:"candidates"`
}

// KeywordHint boosts candidates whose part name starts with the first word
// of Part whenever any of Keywords occurs in the symptom description.
type KeywordHint struct {
	Keywords []string `yaml:"keywords"`
	Part     string   `yaml:"part"`
	Boost    float64  `yaml:"boost"`
}

// KnowledgeBase holds the static tables the engine scores against.
// Fallback seeds the pool when no fault-code rule matches.
type KnowledgeBase struct {
	FaultCodes []FaultCodeRule `yaml:"fault_codes"`
	Keywords   []KeywordHint   `yaml:"keywords"`
	Fallback   []Candidate     `yaml:"fallback"`
}

// DefaultKnowledgeBase returns the compiled-in heuristic tables mapping
// fault-code prefixes and symptom keywords to likely parts. Each call
// returns a fresh copy.
func DefaultKnowledgeBase() KnowledgeBase {
	return KnowledgeBase{
		FaultCodes: []FaultCodeRule{
			{
				Prefix: "P030",
				Candidates: []Candidate{
					{Part: "Spark Plugs", Base: 0.6, Reason: "Engine misfire detected"},
					{Part: "Ignition Coils", Base: 0.5, Reason: "Weak/no spark"},
					{Part: "Fuel Injectors", Base: 0.35, Reason: "Fuel delivery issues"},
					{Part: "Vacuum Leak", Base: 0.25, Reason: "Unmetered air causing lean"},
				},
			},
			{
				Prefix: "P017",
				Candidates: []Candidate{
					{Part: "O2 Sensor (Upstream)", Base: 0.5, Reason: "Fuel trim lean"},
					{Part: "MAF Sensor", Base: 0.45, Reason: "Airflow reading incorrect"},
					{Part: "Vacuum Leak", Base: 0.4, Reason: "Extra air entering intake"},
					{Part: "Fuel Pump/Filter", Base: 0.3, Reason: "Low fuel pressure"},
				},
			},
			{
				Prefix: "P042",
				Candidates: []Candidate{
					{Part: "Catalytic Converter", Base: 0.6, Reason: "Efficiency below threshold"},
					{Part: "O2 Sensor (Downstream)", Base: 0.4, Reason: "Sensor aging or slow"},
					{Part: "Exhaust Leak", Base: 0.25, Reason: "False oxygen readings"},
				},
			},
			{
				Prefix: "P012",
				Candidates: []Candidate{
					{Part: "Throttle Position Sensor", Base: 0.5, Reason: "TPS circuit issues"},
					{Part: "Wiring/Connector", Base: 0.35, Reason: "Signal interruption"},
				},
			},
		},
		Keywords: []KeywordHint{
			{Keywords: []string{"rough idle", "shakes", "vibration"}, Part: "Spark Plugs", Boost: 0.15},
			{Keywords: []string{"stalls", "dies", "no start"}, Part: "Fuel Pump", Boost: 0.2},
			{Keywords: []string{"hesitation", "lag", "surge"}, Part: "MAF Sensor", Boost: 0.12},
			{Keywords: []string{"rotten egg", "sulfur"}, Part: "Catalytic Converter", Boost: 0.18},
			{Keywords: []string{"whistle", "hiss"}, Part: "Vacuum Leak", Boost: 0.15},
		},
		Fallback: []Candidate{
			{Part: "Battery", Base: 0.25, Reason: "Common electrical issue"},
			{Part: "Alternator", Base: 0.2, Reason: "Charging system faults"},
			{Part: "Spark Plugs", Base: 0.18, Reason: "Wear item, causes misfires"},
		},
	}
}
