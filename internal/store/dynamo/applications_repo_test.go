package dynamo

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrKriegler/insurance-premium/internal/core"
)

// fakeAPI keeps items keyed by id and answers COUNT queries from them.
type fakeAPI struct {
	items   map[string]map[string]types.AttributeValue
	pageMax int
	putErr  error
	queries int
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{items: map[string]map[string]types.AttributeValue{}}
}

func (f *fakeAPI) PutItem(_ context.Context, in *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	if f.putErr != nil {
		return nil, f.putErr
	}
	id := in.Item["id"].(*types.AttributeValueMemberS).Value
	if _, ok := f.items[id]; ok && in.ConditionExpression != nil {
		return nil, &types.ConditionalCheckFailedException{Message: aws.String("exists")}
	}
	f.items[id] = in.Item
	return &dynamodb.PutItemOutput{}, nil
}

func (f *fakeAPI) GetItem(_ context.Context, in *dynamodb.GetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	id := in.Key["id"].(*types.AttributeValueMemberS).Value
	return &dynamodb.GetItemOutput{Item: f.items[id]}, nil
}

// Query pages through matching items pageMax at a time, using a numeric
// offset smuggled through LastEvaluatedKey.
func (f *fakeAPI) Query(_ context.Context, in *dynamodb.QueryInput, _ ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
	f.queries++
	var want string
	for _, v := range in.ExpressionAttributeValues {
		want = v.(*types.AttributeValueMemberS).Value
	}

	matched := 0
	for _, item := range f.items {
		if item["insurance_type"].(*types.AttributeValueMemberS).Value == want {
			matched++
		}
	}

	offset := 0
	if in.ExclusiveStartKey != nil {
		var k struct {
			Offset int `dynamodbav:"offset"`
		}
		if err := attributevalue.UnmarshalMap(in.ExclusiveStartKey, &k); err != nil {
			return nil, err
		}
		offset = k.Offset
	}

	page := matched - offset
	out := &dynamodb.QueryOutput{}
	if f.pageMax > 0 && page > f.pageMax {
		page = f.pageMax
		next, _ := attributevalue.MarshalMap(struct {
			Offset int `dynamodbav:"offset"`
		}{offset + page})
		out.LastEvaluatedKey = next
	}
	out.Count = int32(page)
	return out, nil
}

func (f *fakeAPI) ListTables(context.Context, *dynamodb.ListTablesInput, ...func(*dynamodb.Options)) (*dynamodb.ListTablesOutput, error) {
	return &dynamodb.ListTablesOutput{}, nil
}

func newApp(id string, it core.InsuranceType) core.Application {
	return core.Application{
		ID:                id,
		CustomerName:      "JohnDoeSmith",
		CustomerAddress:   "123 Metro Street",
		InsuranceType:     it,
		CalculatedPremium: 5225,
		CreatedAt:         time.Date(2024, 5, 6, 7, 8, 9, 123000000, time.UTC),
	}
}

func TestApplicationItemRoundTrip(t *testing.T) {
	app := newApp("a-1", core.InsuranceTypeHouse)

	av, err := attributevalue.MarshalMap(applicationItemFromCore(app))
	require.NoError(t, err)
	assert.Equal(t, &types.AttributeValueMemberS{Value: "2024-05-06T07:08:09.123Z"}, av["created_at"])
	assert.Equal(t, &types.AttributeValueMemberN{Value: "5225"}, av["calculated_premium"])

	var item ApplicationItem
	require.NoError(t, attributevalue.UnmarshalMap(av, &item))
	got, err := item.ToCore()
	require.NoError(t, err)
	assert.Equal(t, app, got)
}

func TestApplicationItem_BadTimestamp(t *testing.T) {
	_, err := ApplicationItem{ID: "x", CreatedAt: "yesterday"}.ToCore()
	assert.Error(t, err)
}

func TestRepo_CreateGet(t *testing.T) {
	ctx := context.Background()
	repo := NewApplicationRepo(newFakeAPI(), time.Second)

	app := newApp("a-1", core.InsuranceTypeAuto)
	require.NoError(t, repo.Create(ctx, app))

	got, err := repo.Get(ctx, "a-1")
	require.NoError(t, err)
	assert.Equal(t, app, got)

	err = repo.Create(ctx, app)
	assert.ErrorIs(t, err, core.ErrApplicationExists)
	assert.ErrorIs(t, err, core.ErrConflict)

	_, err = repo.Get(ctx, "missing")
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestRepo_CreateWrapsStoreErrors(t *testing.T) {
	api := newFakeAPI()
	api.putErr = errors.New("throttled")
	repo := NewApplicationRepo(api, time.Second)

	err := repo.Create(context.Background(), newApp("a-1", core.InsuranceTypeAuto))
	require.Error(t, err)
	assert.NotErrorIs(t, err, core.ErrConflict)
	assert.Contains(t, err.Error(), "throttled")
}

func TestRepo_CountByTypeFollowsPages(t *testing.T) {
	ctx := context.Background()
	api := newFakeAPI()
	api.pageMax = 2
	repo := NewApplicationRepo(api, time.Second)

	ids := []string{"a", "b", "c", "d", "e"}
	for _, id := range ids {
		require.NoError(t, repo.Create(ctx, newApp(id, core.InsuranceTypeAuto)))
	}
	require.NoError(t, repo.Create(ctx, newApp("m", core.InsuranceTypeMedical)))

	counts, err := repo.CountByType(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[core.InsuranceType]int64{
		core.InsuranceTypeAuto:    5,
		core.InsuranceTypeMedical: 1,
		core.InsuranceTypeHouse:   0,
	}, counts)
	// AUTO needs three pages, the other types one each.
	assert.Equal(t, 5, api.queries)
}

func TestApplicationsTableInput(t *testing.T) {
	in := applicationsTableInput()
	assert.Equal(t, TableApplications, aws.ToString(in.TableName))
	require.Len(t, in.GlobalSecondaryIndexes, 1)
	assert.Equal(t, GSIApplicationsType, aws.ToString(in.GlobalSecondaryIndexes[0].IndexName))
	assert.Equal(t, types.BillingModePayPerRequest, in.BillingMode)
}
