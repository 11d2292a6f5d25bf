package common

import (
	"os"
)

func IsDevelopment() bool {
	return os.Getenv(EnvKeyGoEnv) == "development"
}

func IsProduction() bool {
	return os.Getenv(EnvKeyGoEnv) == "production"
}

func IsLambda() bool {
	return os.Getenv(EnvKeyLambdaFunctionName) != ""
}
