package cache

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/brian-wastle/PWA-Microblog-Back-End/internal/feed"
	"github.com/brian-wastle/PWA-Microblog-Back-End/internal/models"
)

// DynamoCache keeps recent posts in a DynamoDB table keyed by id. The table
// is small by construction (the synchronizer trims it), so full scans stay
// cheap.
type DynamoCache struct {
	client *dynamodb.Client
	table  string
}

var _ feed.CachePort = (*DynamoCache)(nil)

func NewDynamo(client *dynamodb.Client, table string) *DynamoCache {
	return &DynamoCache{client: client, table: table}
}

func (c *DynamoCache) Put(ctx context.Context, entry models.CacheEntry) error {
	item, err := attributevalue.MarshalMap(entry)
	if err != nil {
		return fmt.Errorf("marshal cache entry: %w", err)
	}
	_, err = c.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(c.table),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("put item: %w", err)
	}
	return nil
}

func (c *DynamoCache) ScanAll(ctx context.Context) ([]models.CacheEntry, error) {
	var out []models.CacheEntry
	p := dynamodb.NewScanPaginator(c.client, &dynamodb.ScanInput{
		TableName: aws.String(c.table),
	})
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		var batch []models.CacheEntry
		if err := attributevalue.UnmarshalListOfMaps(page.Items, &batch); err != nil {
			return nil, fmt.Errorf("unmarshal scan page: %w", err)
		}
		out = append(out, batch...)
	}
	return out, nil
}

func (c *DynamoCache) Delete(ctx context.Context, id string) error {
	_, err := c.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(c.table),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
	})
	if err != nil {
		return fmt.Errorf("delete item %s: %w", id, err)
	}
	return nil
}
