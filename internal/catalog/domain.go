package catalog

// Domain is one of the four PL-300 exam content areas.
type Domain string

const (
	DomainPrepareData Domain = "preparar-datos"
	DomainModelData   Domain = "modelar-datos"
	DomainVisualize   Domain = "visualizar-analizar"
	DomainAdminister  Domain = "administrar-asegurar"

	// DomainAny matches every domain in filter positions.
	DomainAny Domain = "any"
)

// AllDomains returns the four concrete domains in display order.
func AllDomains() []Domain {
	return []Domain{DomainPrepareData, DomainModelData, DomainVisualize, DomainAdminister}
}

// Valid reports whether d is one of the four concrete domains.
func (d Domain) Valid() bool {
	switch d {
	case DomainPrepareData, DomainModelData, DomainVisualize, DomainAdminister:
		return true
	}
	return false
}

// DisplayName returns a human-readable label for the domain.
func (d Domain) DisplayName() string {
	switch d {
	case DomainPrepareData:
		return "Preparar los datos"
	case DomainModelData:
		return "Modelar los datos"
	case DomainVisualize:
		return "Visualizar y analizar"
	case DomainAdminister:
		return "Administrar y asegurar"
	case DomainAny:
		return "Todos los dominios"
	default:
		return string(d)
	}
}

// Level is one of the three difficulty tiers.
type Level string

const (
	LevelBeginner     Level = "principiante"
	LevelIntermediate Level = "intermedio"
	LevelAdvanced     Level = "avanzado"

	// LevelAny matches every level in filter positions.
	LevelAny Level = "any"
)

// AllLevels returns the three concrete levels from easiest to hardest.
func AllLevels() []Level {
	return []Level{LevelBeginner, LevelIntermediate, LevelAdvanced}
}

// Valid reports whether l is one of the three concrete levels.
func (l Level) Valid() bool {
	switch l {
	case LevelBeginner, LevelIntermediate, LevelAdvanced:
		return true
	}
	return false
}

// DisplayName returns a human-readable label for the level.
func (l Level) DisplayName() string {
	switch l {
	case LevelBeginner:
		return "Principiante"
	case LevelIntermediate:
		return "Intermedio"
	case LevelAdvanced:
		return "Avanzado"
	case LevelAny:
		return "Todos los niveles"
	default:
		return string(l)
	}
}
