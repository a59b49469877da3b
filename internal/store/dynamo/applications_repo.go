package dynamo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/MrKriegler/insurance-premium/internal/core"
)

// API is the subset of the DynamoDB client the repository uses.
type API interface {
	PutItem(ctx context.Context, in *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	GetItem(ctx context.Context, in *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	Query(ctx context.Context, in *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
	ListTables(ctx context.Context, in *dynamodb.ListTablesInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ListTablesOutput, error)
}

type ApplicationItem struct {
	ID                string `dynamodbav:"id"`
	CustomerName      string `dynamodbav:"customer_name"`
	CustomerAddress   string `dynamodbav:"customer_address"`
	InsuranceType     string `dynamodbav:"insurance_type"`
	CalculatedPremium int64  `dynamodbav:"calculated_premium"`
	CreatedAt         string `dynamodbav:"created_at"`
}

func (i ApplicationItem) ToCore() (core.Application, error) {
	createdAt, err := time.Parse(time.RFC3339Nano, i.CreatedAt)
	if err != nil {
		return core.Application{}, fmt.Errorf("parse created_at %q: %w", i.CreatedAt, err)
	}
	return core.Application{
		ID:                i.ID,
		CustomerName:      i.CustomerName,
		CustomerAddress:   i.CustomerAddress,
		InsuranceType:     core.InsuranceType(i.InsuranceType),
		CalculatedPremium: i.CalculatedPremium,
		CreatedAt:         createdAt.UTC(),
	}, nil
}

func applicationItemFromCore(a core.Application) ApplicationItem {
	return ApplicationItem{
		ID:                a.ID,
		CustomerName:      a.CustomerName,
		CustomerAddress:   a.CustomerAddress,
		InsuranceType:     string(a.InsuranceType),
		CalculatedPremium: a.CalculatedPremium,
		CreatedAt:         a.CreatedAt.UTC().Format(time.RFC3339Nano),
	}
}

type ApplicationRepo struct {
	client    API
	opTimeout time.Duration
}

func NewApplicationRepo(client API, opTimeout time.Duration) *ApplicationRepo {
	return &ApplicationRepo{client: client, opTimeout: opTimeout}
}

func (r *ApplicationRepo) Create(ctx context.Context, app core.Application) error {
	ctx, cancel := context.WithTimeout(ctx, r.opTimeout)
	defer cancel()

	av, err := attributevalue.MarshalMap(applicationItemFromCore(app))
	if err != nil {
		return fmt.Errorf("applications.marshal: %w", err)
	}

	cond := expression.AttributeNotExists(expression.Name("id"))
	expr, err := expression.NewBuilder().WithCondition(cond).Build()
	if err != nil {
		return fmt.Errorf("applications.buildExpr: %w", err)
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:                 aws.String(TableApplications),
		Item:                      av,
		ConditionExpression:       expr.Condition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return core.ErrApplicationExists
		}
		return fmt.Errorf("applications.putItem: %w", err)
	}

	return nil
}

func (r *ApplicationRepo) Get(ctx context.Context, id string) (core.Application, error) {
	ctx, cancel := context.WithTimeout(ctx, r.opTimeout)
	defer cancel()

	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(TableApplications),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return core.Application{}, fmt.Errorf("applications.getItem: %w", err)
	}

	if out.Item == nil {
		return core.Application{}, core.ErrApplicationNotFound
	}

	var item ApplicationItem
	if err := attributevalue.UnmarshalMap(out.Item, &item); err != nil {
		return core.Application{}, fmt.Errorf("applications.unmarshal: %w", err)
	}

	return item.ToCore()
}

// CountByType runs one COUNT query per insurance type against the type index.
func (r *ApplicationRepo) CountByType(ctx context.Context) (map[core.InsuranceType]int64, error) {
	counts := make(map[core.InsuranceType]int64, len(core.InsuranceTypes))
	for _, it := range core.InsuranceTypes {
		n, err := r.countType(ctx, it)
		if err != nil {
			return nil, err
		}
		counts[it] = n
	}
	return counts, nil
}

func (r *ApplicationRepo) countType(ctx context.Context, it core.InsuranceType) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, r.opTimeout)
	defer cancel()

	keyCond := expression.Key("insurance_type").Equal(expression.Value(string(it)))
	expr, err := expression.NewBuilder().WithKeyCondition(keyCond).Build()
	if err != nil {
		return 0, fmt.Errorf("applications.buildExpr: %w", err)
	}

	input := &dynamodb.QueryInput{
		TableName:                 aws.String(TableApplications),
		IndexName:                 aws.String(GSIApplicationsType),
		KeyConditionExpression:    expr.KeyCondition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		Select:                    types.SelectCount,
	}

	var total int64
	for {
		out, err := r.client.Query(ctx, input)
		if err != nil {
			return 0, fmt.Errorf("applications.query %s: %w", it, err)
		}
		total += int64(out.Count)
		if len(out.LastEvaluatedKey) == 0 {
			return total, nil
		}
		input.ExclusiveStartKey = out.LastEvaluatedKey
	}
}

func (r *ApplicationRepo) Ping(ctx context.Context) error {
	return ping(ctx, r.client)
}
