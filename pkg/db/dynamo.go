package db

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"go.uber.org/zap"
	"liyu1981.xyz/bp-report-service/pkg/common"
	"liyu1981.xyz/bp-report-service/pkg/models"
)

// DynamoAPI is the subset of *dynamodb.Client the store calls.
type DynamoAPI interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
}

type DynamoStore struct {
	Client    DynamoAPI
	TableName string
	PageLimit int
}

func NewDynamoStore(client DynamoAPI, tableName string, pageLimit int) *DynamoStore {
	return &DynamoStore{
		Client:    client,
		TableName: tableName,
		PageLimit: pageLimitOrDefault(pageLimit),
	}
}

func (s *DynamoStore) PutReading(ctx context.Context, reading *models.Reading) error {
	item, err := attributevalue.MarshalMap(reading)
	if err != nil {
		return fmt.Errorf("marshal reading %s: %w", reading.ReadingID, err)
	}

	_, err = s.Client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.TableName),
		Item:      item,
		// readings are never overwritten
		ConditionExpression: aws.String("attribute_not_exists(reading_id)"),
	})
	if err != nil {
		return fmt.Errorf("put reading %s: %w", reading.ReadingID, err)
	}
	return nil
}

func (s *DynamoStore) ScanReadings(ctx context.Context) ([]models.Reading, error) {
	logger := common.GetLoggerWith(common.LoggerNameStore)

	paginator := dynamodb.NewScanPaginator(s.Client, &dynamodb.ScanInput{
		TableName: aws.String(s.TableName),
		Limit:     aws.Int32(int32(pageLimitOrDefault(s.PageLimit))),
	})

	var readings []models.Reading
	pages := 0
	for paginator.HasMorePages() {
		out, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("scan %s page %d: %w", s.TableName, pages+1, err)
		}
		pages++

		var page []models.Reading
		if err := attributevalue.UnmarshalListOfMaps(out.Items, &page); err != nil {
			return nil, fmt.Errorf("unmarshal %s page %d: %w", s.TableName, pages, err)
		}
		readings = append(readings, page...)
	}

	logger.Debug("Scanned readings",
		zap.String("table", s.TableName),
		zap.Int("pages", pages),
		zap.Int("readings", len(readings)))

	return readings, nil
}
