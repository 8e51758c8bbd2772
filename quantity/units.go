package quantity

// builtinUnits is the default table. Base units per kind: gram (mass),
// millilitre (volume), second (time), degree celsius (temperature).
// Declaration order matters: it breaks best-unit ties.
var builtinUnits = []UnitDef{
	// mass, metric
	{Name: "mg", Aliases: []string{"milligram", "milligrams"}, Kind: KindMass, System: SystemMetric, Factor: 0.001},
	{Name: "g", Aliases: []string{"gram", "grams"}, Kind: KindMass, System: SystemMetric, Factor: 1},
	{Name: "kg", Aliases: []string{"kilogram", "kilograms"}, Kind: KindMass, System: SystemMetric, Factor: 1000},
	// mass, imperial
	{Name: "oz", Aliases: []string{"ounce", "ounces"}, Kind: KindMass, System: SystemImperial, Factor: 28.349523125},
	{Name: "lb", Aliases: []string{"pound", "pounds"}, Kind: KindMass, System: SystemImperial, Factor: 453.59237},

	// volume, metric
	{Name: "ml", Aliases: []string{"milliliter", "milliliters", "millilitre", "millilitres"}, Kind: KindVolume, System: SystemMetric, Factor: 1},
	{Name: "cl", Aliases: []string{"centiliter", "centiliters"}, Kind: KindVolume, System: SystemMetric, Factor: 10},
	{Name: "dl", Aliases: []string{"deciliter", "deciliters"}, Kind: KindVolume, System: SystemMetric, Factor: 100},
	{Name: "l", Aliases: []string{"liter", "liters", "litre", "litres"}, Kind: KindVolume, System: SystemMetric, Factor: 1000},
	// volume, imperial
	{Name: "tsp", Aliases: []string{"teaspoon", "teaspoons"}, Kind: KindVolume, System: SystemImperial, Factor: 4.92892159375},
	{Name: "tbsp", Aliases: []string{"tablespoon", "tablespoons"}, Kind: KindVolume, System: SystemImperial, Factor: 14.78676478125},
	{Name: "fl oz", Aliases: []string{"fluid ounce", "fluid ounces"}, Kind: KindVolume, System: SystemImperial, Factor: 29.5735295625},
	{Name: "cup", Aliases: []string{"cups"}, Kind: KindVolume, System: SystemImperial, Factor: 236.5882365},
	{Name: "pint", Aliases: []string{"pints", "pt"}, Kind: KindVolume, System: SystemImperial, Factor: 473.176473},
	{Name: "quart", Aliases: []string{"quarts", "qt"}, Kind: KindVolume, System: SystemImperial, Factor: 946.352946},
	{Name: "gallon", Aliases: []string{"gallons", "gal"}, Kind: KindVolume, System: SystemImperial, Factor: 3785.411784},

	// time, systemless: the same everywhere
	{Name: "s", Aliases: []string{"sec", "secs", "second", "seconds"}, Kind: KindTime, System: SystemNone, Factor: 1},
	{Name: "min", Aliases: []string{"minute", "minutes"}, Kind: KindTime, System: SystemNone, Factor: 60},
	{Name: "h", Aliases: []string{"hour", "hours"}, Kind: KindTime, System: SystemNone, Factor: 3600},
	{Name: "day", Aliases: []string{"days"}, Kind: KindTime, System: SystemNone, Factor: 86400},

	// temperature
	{Name: "°C", Aliases: []string{"ºC", "C", "celsius"}, Kind: KindTemperature, System: SystemMetric, Factor: 1},
	{Name: "°F", Aliases: []string{"ºF", "F", "fahrenheit"}, Kind: KindTemperature, System: SystemImperial, Factor: 5.0 / 9.0, Offset: -32.0 * 5.0 / 9.0},
}

// Builtin returns a converter over the default unit table.
func Builtin() *Converter {
	return NewConverter(builtinUnits)
}
