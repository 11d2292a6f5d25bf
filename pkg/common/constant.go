package common

const (
	EnvKeyGoEnv string = "GO_ENV"

	EnvKeyRunIntegrationTests string = "RUN_INTEGRATION_TESTS"

	// set by the Lambda runtime
	EnvKeyLambdaFunctionName string = "AWS_LAMBDA_FUNCTION_NAME"

	EnvKeyBPDBType  string = "BP_DB_TYPE"
	EnvKeyBPDbPath  string = "BP_DB_PATH"
	EnvKeyTableName string = "TABLE_NAME"

	EnvKeyBucketName   string = "BUCKET_NAME"
	EnvKeyBPReportsDir string = "BP_REPORTS_DIR"

	EnvKeyBPScanPageLimit string = "BP_SCAN_PAGE_LIMIT"

	EnvKeyBPHttpHostPort string = "BP_HTTP_HOST_PORT"

	EnvKeyBPDefaultRate  string = "BP_DEFAULT_RATE"
	EnvKeyBPDefaultBurst string = "BP_DEFAULT_BURST"

	EnvKeyBPLogDir string = "BP_LOG_DIR"

	DBTypeDynamoDB string = "dynamodb"
	DBTypeFile     string = "file"
	DBTypeMemory   string = "memory"

	LoggerNameBPCore        string = "bp_core"
	LoggerNameRestfulServer string = "restful_server"
	LoggerNameLambda        string = "lambda_handler"
	LoggerNameStore         string = "store"
	LoggerFieldBPCategory   string = "category"
	LoggerCategoryReading   string = "reading"
	LoggerCategoryReport    string = "report"
)
