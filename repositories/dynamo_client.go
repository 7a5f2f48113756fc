package repositories

import (
	"context"
	"fmt"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/rs/zerolog/log"
)

type DynamoDBAPI interface {
	UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
}

type DynamoDBClient struct {
	client    DynamoDBAPI
	tableName string
}

func NewDynamoDBClient(client DynamoDBAPI, tableName string) *DynamoDBClient {
	return &DynamoDBClient{
		client:    client,
		tableName: tableName,
	}
}

func (d *DynamoDBClient) UpdateRunStatus(ctx context.Context, runID string, status string) error {
	_, err := d.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(d.tableName),
		Key: map[string]types.AttributeValue{
			"run_id": &types.AttributeValueMemberS{Value: runID},
		},
		UpdateExpression: aws.String("SET #s = :status"),
		ExpressionAttributeNames: map[string]string{
			"#s": "status",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":status": &types.AttributeValueMemberS{Value: status},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to update run status in DynamoDB for run %s: %w", runID, err)
	}

	log.Debug().Str("run_id", runID).Str("status", status).Str("table", d.tableName).Msg("run status updated")
	return nil
}

func (d *DynamoDBClient) CompleteRun(ctx context.Context, runID string, status string, completedAt string, deliveredCount int) error {
	_, err := d.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(d.tableName),
		Key: map[string]types.AttributeValue{
			"run_id": &types.AttributeValueMemberS{Value: runID},
		},
		UpdateExpression: aws.String("SET #s = :status, completed_at = :cat, delivered_count = :cnt"),
		ExpressionAttributeNames: map[string]string{
			"#s": "status",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":status": &types.AttributeValueMemberS{Value: status},
			":cat":    &types.AttributeValueMemberS{Value: completedAt},
			":cnt":    &types.AttributeValueMemberN{Value: strconv.Itoa(deliveredCount)},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to complete run in DynamoDB for run %s: %w", runID, err)
	}

	log.Debug().Str("run_id", runID).Str("status", status).Int("delivered", deliveredCount).Msg("run completion recorded")
	return nil
}
