package units

var (
	dimLength      = DimensionOf(Length)
	dimMass        = DimensionOf(Mass)
	dimTime        = DimensionOf(Time)
	dimTemperature = DimensionOf(Temperature)
	dimCurrent     = DimensionOf(Current)
	dimSubstance   = DimensionOf(Substance)
	dimLuminosity  = DimensionOf(Luminosity)

	dimArea     = dimLength.Pow(2)
	dimVolume   = dimLength.Pow(3)
	dimVelocity = dimLength.Div(dimTime)
	dimForce    = dimMass.Mul(dimLength).Div(dimTime.Pow(2))
	dimEnergy   = dimForce.Mul(dimLength)
	dimPower    = dimEnergy.Div(dimTime)
	dimPressure = dimForce.Div(dimArea)
)

const (
	inch       = 0.0254
	foot       = 12 * inch
	yard       = 3 * foot
	mile       = 1760 * yard
	pound      = 0.45359237
	minute     = 60.0
	hour       = 60 * minute
	day        = 24 * hour
	year       = 365.25 * day
	gallon     = 231 * inch * inch * inch
	quart      = gallon / 4
	pint       = quart / 2
	cup        = pint / 2
	fluidOunce = gallon / 128

	zeroCelsius    = 273.15
	fahrenheitStep = 5.0 / 9.0
)

var builtinDefinitions = []Definition{
	// Base units.
	{Name: "meter", Symbols: []string{"m"}, Aliases: []string{"metre"}, Scale: 1, Dim: dimLength, Prefixable: true},
	{Name: "gram", Symbols: []string{"g"}, Aliases: []string{"gramme"}, Scale: 1e-3, Dim: dimMass, Prefixable: true},
	{Name: "kilogram", Symbols: []string{"kg"}, Scale: 1, Dim: dimMass},
	{Name: "second", Symbols: []string{"s", "sec"}, Scale: 1, Dim: dimTime, Prefixable: true},
	{Name: "kelvin", Symbols: []string{"K"}, Aliases: []string{"degK"}, Scale: 1, Dim: dimTemperature, Prefixable: true},
	{Name: "ampere", Symbols: []string{"A"}, Aliases: []string{"amp"}, Scale: 1, Dim: dimCurrent, Prefixable: true},
	{Name: "mole", Symbols: []string{"mol"}, Scale: 1, Dim: dimSubstance, Prefixable: true},
	{Name: "candela", Symbols: []string{"cd"}, Scale: 1, Dim: dimLuminosity, Prefixable: true},

	// Length.
	{Name: "inch", Symbols: []string{"in"}, Aliases: []string{"inches"}, Scale: inch, Dim: dimLength},
	{Name: "foot", Symbols: []string{"ft"}, Aliases: []string{"feet"}, Scale: foot, Dim: dimLength},
	{Name: "yard", Symbols: []string{"yd"}, Scale: yard, Dim: dimLength},
	{Name: "mile", Symbols: []string{"mi"}, Scale: mile, Dim: dimLength},
	{Name: "nautical_mile", Symbols: []string{"nmi"}, Scale: 1852, Dim: dimLength},
	{Name: "angstrom", Symbols: []string{"Å"}, Scale: 1e-10, Dim: dimLength},

	// Mass.
	{Name: "pound", Symbols: []string{"lb"}, Scale: pound, Dim: dimMass},
	{Name: "ounce", Symbols: []string{"oz"}, Scale: pound / 16, Dim: dimMass},
	{Name: "stone", Symbols: []string{"st"}, Scale: 14 * pound, Dim: dimMass},
	{Name: "tonne", Symbols: []string{"t"}, Aliases: []string{"metric_ton"}, Scale: 1e3, Dim: dimMass},

	// Time.
	{Name: "minute", Symbols: []string{"min"}, Scale: minute, Dim: dimTime},
	{Name: "hour", Symbols: []string{"h", "hr"}, Scale: hour, Dim: dimTime},
	{Name: "day", Symbols: []string{"d"}, Scale: day, Dim: dimTime},
	{Name: "week", Symbols: []string{"wk"}, Scale: 7 * day, Dim: dimTime},
	{Name: "fortnight", Scale: 14 * day, Dim: dimTime},
	{Name: "year", Symbols: []string{"yr", "a"}, Aliases: []string{"julian_year"}, Scale: year, Dim: dimTime},
	{Name: "month", Symbols: []string{"mo"}, Scale: year / 12, Dim: dimTime},
	{Name: "decade", Scale: 10 * year, Dim: dimTime},
	{Name: "century", Aliases: []string{"centuries"}, Scale: 100 * year, Dim: dimTime},

	// Temperature. degC and degF are offset units; the delta_ variants are
	// the matching temperature differences.
	{Name: "degC", Symbols: []string{"°C"}, Aliases: []string{"celsius", "degree_Celsius"}, Scale: 1, Offset: zeroCelsius, Dim: dimTemperature},
	{Name: "degF", Symbols: []string{"°F"}, Aliases: []string{"fahrenheit", "degree_Fahrenheit"}, Scale: fahrenheitStep, Offset: zeroCelsius - 32*fahrenheitStep, Dim: dimTemperature},
	{Name: "degR", Symbols: []string{"°R"}, Aliases: []string{"rankine", "degree_Rankine"}, Scale: fahrenheitStep, Dim: dimTemperature},
	{Name: "delta_degC", Scale: 1, Dim: dimTemperature},
	{Name: "delta_degF", Scale: fahrenheitStep, Dim: dimTemperature},

	// Volume.
	{Name: "liter", Symbols: []string{"L", "l"}, Aliases: []string{"litre"}, Scale: 1e-3, Dim: dimVolume, Prefixable: true},
	{Name: "gallon", Symbols: []string{"gal"}, Scale: gallon, Dim: dimVolume},
	{Name: "quart", Symbols: []string{"qt"}, Scale: quart, Dim: dimVolume},
	{Name: "pint", Symbols: []string{"pt"}, Scale: pint, Dim: dimVolume},
	{Name: "cup", Scale: cup, Dim: dimVolume},
	{Name: "fluid_ounce", Symbols: []string{"floz"}, Scale: fluidOunce, Dim: dimVolume},

	// Area.
	{Name: "are", Scale: 100, Dim: dimArea},
	{Name: "hectare", Symbols: []string{"ha"}, Scale: 1e4, Dim: dimArea},
	{Name: "acre", Symbols: []string{"ac"}, Aliases: []string{"international_acre"}, Scale: 43560 * foot * foot, Dim: dimArea},

	// Speed.
	{Name: "mph", Scale: mile / hour, Dim: dimVelocity},
	{Name: "kph", Scale: 1e3 / hour, Dim: dimVelocity},
	{Name: "knot", Symbols: []string{"kt"}, Scale: 1852 / hour, Dim: dimVelocity},

	// Derived SI.
	{Name: "hertz", Symbols: []string{"Hz"}, Scale: 1, Dim: Dimensionless.Div(dimTime), Prefixable: true},
	{Name: "newton", Symbols: []string{"N"}, Scale: 1, Dim: dimForce, Prefixable: true},
	{Name: "joule", Symbols: []string{"J"}, Scale: 1, Dim: dimEnergy, Prefixable: true},
	{Name: "watt", Symbols: []string{"W"}, Scale: 1, Dim: dimPower, Prefixable: true},
	{Name: "pascal", Symbols: []string{"Pa"}, Scale: 1, Dim: dimPressure, Prefixable: true},
	{Name: "calorie", Symbols: []string{"cal"}, Scale: 4.184, Dim: dimEnergy, Prefixable: true},

	// Dimensionless.
	{Name: "percent", Symbols: []string{"%"}, Scale: 1e-2, Dim: Dimensionless},
	{Name: "dozen", Scale: 12, Dim: Dimensionless},
}
