package standards

var mcbSizes = []int{6, 10, 13, 16, 20, 25, 32, 40, 50, 63, 80, 100, 125}

var fuseSizes = []int{2, 4, 6, 10, 16, 20, 25, 32, 35, 40, 50, 63, 80, 100, 125, 160, 200, 250}

func buildLoadTypes() map[string]LoadType {
	return map[string]LoadType{
		"lighting": {Name: "Lighting", MaxVoltageDrop: 3.0, TypicalPowerFactor: 0.90},
		"socket":   {Name: "Socket outlets", MaxVoltageDrop: 5.0, TypicalPowerFactor: 0.95},
		"motor":    {Name: "Motor", MaxVoltageDrop: 5.0, TypicalPowerFactor: 0.85},
		"heating":  {Name: "Heating", MaxVoltageDrop: 5.0, TypicalPowerFactor: 1.00},
		"general":  {Name: "General", MaxVoltageDrop: 5.0, TypicalPowerFactor: 0.95},
	}
}

func buildInstallationMethods() map[string]InstallationMethod {
	return map[string]InstallationMethod{
		"method_1": {ReferenceAmbient: 30, Description: "Embedded in a thermally insulating wall"},
		"method_2": {ReferenceAmbient: 30, Description: "In conduit or trunking on a wall"},
		"method_3": {ReferenceAmbient: 30, Description: "Clipped direct to a surface"},
	}
}

func buildSeverities() []SeverityLevel {
	return []SeverityLevel{
		{Code: "INFO", Name: "Information", Weight: 1, Color: "#2f80ed"},
		{Code: "WARNING", Name: "Warning", Weight: 2, Color: "#f2994a"},
		{Code: "CRITICAL", Name: "Critical", Weight: 3, Color: "#eb5757"},
	}
}

func buildCategories() []Category {
	return []Category{
		{Code: "CABLE", Name: "Cable sizing"},
		{Code: "PROTECTION", Name: "Protective device"},
		{Code: "VOLTAGE", Name: "Voltage drop"},
		{Code: "IMPEDANCE", Name: "Loop impedance"},
		{Code: "COORDINATION", Name: "Device coordination"},
	}
}
