package main

import (
	"context"
	"log"

	"github.com/aws/aws-lambda-go/lambda"
	"liyu1981.xyz/bp-report-service/pkg/apigw"
	"liyu1981.xyz/bp-report-service/pkg/app"
	"liyu1981.xyz/bp-report-service/pkg/common"
)

func main() {
	cfg, err := common.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	bpCore, err := app.Build(context.Background(), cfg)
	if err != nil {
		log.Fatalf("failed to build bp core: %v", err)
	}

	h := &apigw.Handlers{Bp: bpCore}
	lambda.Start(h.PostReading)
}
