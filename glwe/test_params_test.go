package glwe

var (
	// testInsecure are small parameters used only for testing.
	// They do not provide any security.
	testInsecure = []ParametersLiteral{
		{
			LogQ:            32,
			LWEDimension:    128,
			GLWEDimension:   1,
			LogN:            9,
			LWELogStdDev:    -20,
			GLWELogStdDev:   -25,
			PBSBaseLog:      7,
			PBSLevel:        3,
			KSBaseLog:       2,
			KSLevel:         8,
			KeyDistribution: Binary,
		},
		{
			LogQ:            64,
			LWEDimension:    128,
			GLWEDimension:   2,
			LogN:            8,
			LWELogStdDev:    -30,
			GLWELogStdDev:   -40,
			PBSBaseLog:      10,
			PBSLevel:        3,
			KSBaseLog:       4,
			KSLevel:         6,
			KeyDistribution: Ternary,
		},
	}
)
