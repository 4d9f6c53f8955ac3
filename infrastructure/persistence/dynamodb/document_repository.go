package dynamodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fieldstore/application/ports"
	"fieldstore/domain/core/entities"
	apperrors "fieldstore/pkg/errors"
	"fieldstore/pkg/fieldexpr"
	"fieldstore/pkg/observability"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"
)

// Item attributes reserved for table bookkeeping. User attributes live at
// the top level of the item alongside them so compiled field paths
// address them directly; reserved names are overwritten on write and
// stripped on read.
var metadataAttributes = []string{"PK", "SK", "EntityType", "DocumentID", "OwnerID", "CreatedAt", "UpdatedAt"}

// DocumentRepository implements ports.DocumentRepository using a DynamoDB
// single-table design: PK=USER#{owner}, SK=DOC#{id}.
type DocumentRepository struct {
	client    *dynamodb.Client
	tableName string
	tracer    *observability.Tracer
	logger    *zap.Logger
}

// NewDocumentRepository creates a new DocumentRepository
func NewDocumentRepository(client *dynamodb.Client, tableName string, tracer *observability.Tracer, logger *zap.Logger) ports.DocumentRepository {
	return &DocumentRepository{
		client:    client,
		tableName: tableName,
		tracer:    tracer,
		logger:    logger,
	}
}

func ownerPK(ownerID string) string {
	return fmt.Sprintf("USER#%s", ownerID)
}

func documentSK(documentID string) string {
	return fmt.Sprintf("DOC#%s", documentID)
}

func (r *DocumentRepository) key(ownerID, documentID string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"PK": &types.AttributeValueMemberS{Value: ownerPK(ownerID)},
		"SK": &types.AttributeValueMemberS{Value: documentSK(documentID)},
	}
}

// Put creates or fully replaces a document
func (r *DocumentRepository) Put(ctx context.Context, doc *entities.Document) error {
	item, err := attributevalue.MarshalMap(doc.Attributes())
	if err != nil {
		return apperrors.NewDatabaseError("put", err)
	}

	// Bookkeeping attributes win over same-named payload attributes.
	item["PK"] = &types.AttributeValueMemberS{Value: ownerPK(doc.OwnerID())}
	item["SK"] = &types.AttributeValueMemberS{Value: documentSK(doc.ID().String())}
	item["EntityType"] = &types.AttributeValueMemberS{Value: "DOCUMENT"}
	item["DocumentID"] = &types.AttributeValueMemberS{Value: doc.ID().String()}
	item["OwnerID"] = &types.AttributeValueMemberS{Value: doc.OwnerID()}
	item["CreatedAt"] = &types.AttributeValueMemberS{Value: doc.CreatedAt().Format(time.RFC3339)}
	item["UpdatedAt"] = &types.AttributeValueMemberS{Value: doc.UpdatedAt().Format(time.RFC3339)}

	input := &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	}

	err = r.tracer.TraceFunction(ctx, "dynamodb.PutItem", func(ctx context.Context) error {
		_, err := r.client.PutItem(ctx, input)
		return err
	})
	if err != nil {
		r.logger.Error("Failed to put document",
			zap.String("documentID", doc.ID().String()),
			zap.Error(err),
		)
		return apperrors.NewDatabaseError("put", err)
	}

	r.logger.Debug("Document stored",
		zap.String("documentID", doc.ID().String()),
		zap.String("ownerID", doc.OwnerID()),
	)

	return nil
}

// Get returns a document's attributes. A non-nil projection is passed to
// DynamoDB verbatim: expression string plus name aliases, no literal
// attribute names.
func (r *DocumentRepository) Get(ctx context.Context, ownerID, documentID string, projection *fieldexpr.Projection) (map[string]interface{}, error) {
	input := &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       r.key(ownerID, documentID),
	}
	if projection != nil {
		input.ProjectionExpression = aws.String(projection.Expression)
		input.ExpressionAttributeNames = projection.Names
	}

	var result *dynamodb.GetItemOutput
	err := r.tracer.TraceFunction(ctx, "dynamodb.GetItem", func(ctx context.Context) error {
		var err error
		result, err = r.client.GetItem(ctx, input)
		return err
	})
	if err != nil {
		return nil, apperrors.NewDatabaseError("get", err)
	}

	if len(result.Item) == 0 {
		if projection == nil {
			return nil, apperrors.NewNotFoundError("document")
		}
		// The projection may legitimately match nothing on an existing
		// document; an empty item is only "not found" when the key itself
		// is missing. GetItem cannot tell the two apart, so an empty
		// projected read returns an empty attribute set.
		return map[string]interface{}{}, nil
	}

	var attributes map[string]interface{}
	if err := attributevalue.UnmarshalMap(result.Item, &attributes); err != nil {
		return nil, apperrors.NewDatabaseError("get", err)
	}

	for _, name := range metadataAttributes {
		delete(attributes, name)
	}

	return attributes, nil
}

// UpdateFields applies a compiled partial update. The expression and both
// alias maps come straight from the compiler; values are marshalled to
// DynamoDB attribute values here (an explicit nil becomes NULL, which is
// the value-clear semantics).
func (r *DocumentRepository) UpdateFields(ctx context.Context, ownerID, documentID string, update *fieldexpr.Update) error {
	input := &dynamodb.UpdateItemInput{
		TableName:                aws.String(r.tableName),
		Key:                      r.key(ownerID, documentID),
		UpdateExpression:         aws.String(update.Expression),
		ExpressionAttributeNames: update.Names,
		ConditionExpression:      aws.String("attribute_exists(PK)"),
	}

	if len(update.Values) > 0 {
		values, err := attributevalue.MarshalMap(update.Values)
		if err != nil {
			return apperrors.NewDatabaseError("update", err)
		}
		input.ExpressionAttributeValues = values
	}

	err := r.tracer.TraceFunction(ctx, "dynamodb.UpdateItem", func(ctx context.Context) error {
		_, err := r.client.UpdateItem(ctx, input)
		return err
	})
	if err != nil {
		var conditionFailed *types.ConditionalCheckFailedException
		if errors.As(err, &conditionFailed) {
			return apperrors.NewNotFoundError("document")
		}
		r.logger.Error("Failed to update document fields",
			zap.String("documentID", documentID),
			zap.String("expression", update.Expression),
			zap.Error(err),
		)
		return apperrors.NewDatabaseError("update", err)
	}

	return nil
}

// Delete removes a document
func (r *DocumentRepository) Delete(ctx context.Context, ownerID, documentID string) error {
	input := &dynamodb.DeleteItemInput{
		TableName:           aws.String(r.tableName),
		Key:                 r.key(ownerID, documentID),
		ConditionExpression: aws.String("attribute_exists(PK)"),
	}

	err := r.tracer.TraceFunction(ctx, "dynamodb.DeleteItem", func(ctx context.Context) error {
		_, err := r.client.DeleteItem(ctx, input)
		return err
	})
	if err != nil {
		var conditionFailed *types.ConditionalCheckFailedException
		if errors.As(err, &conditionFailed) {
			return apperrors.NewNotFoundError("document")
		}
		return apperrors.NewDatabaseError("delete", err)
	}

	r.logger.Debug("Document deleted",
		zap.String("documentID", documentID),
		zap.String("ownerID", ownerID),
	)

	return nil
}

// summaryItem is the projected shape used by List
type summaryItem struct {
	DocumentID string `dynamodbav:"DocumentID"`
	CreatedAt  string `dynamodbav:"CreatedAt"`
	UpdatedAt  string `dynamodbav:"UpdatedAt"`
}

// List returns summaries of all documents owned by a user
func (r *DocumentRepository) List(ctx context.Context, ownerID string) ([]ports.DocumentSummary, error) {
	keyCondition := expression.Key("PK").Equal(expression.Value(ownerPK(ownerID))).
		And(expression.Key("SK").BeginsWith("DOC#"))
	metadataProjection := expression.NamesList(
		expression.Name("DocumentID"),
		expression.Name("CreatedAt"),
		expression.Name("UpdatedAt"),
	)

	expr, err := expression.NewBuilder().
		WithKeyCondition(keyCondition).
		WithProjection(metadataProjection).
		Build()
	if err != nil {
		return nil, apperrors.NewDatabaseError("list", err)
	}

	summaries := make([]ports.DocumentSummary, 0)
	var startKey map[string]types.AttributeValue

	for {
		input := &dynamodb.QueryInput{
			TableName:                 aws.String(r.tableName),
			KeyConditionExpression:    expr.KeyCondition(),
			ProjectionExpression:      expr.Projection(),
			ExpressionAttributeNames:  expr.Names(),
			ExpressionAttributeValues: expr.Values(),
			ExclusiveStartKey:         startKey,
		}

		var result *dynamodb.QueryOutput
		err := r.tracer.TraceFunction(ctx, "dynamodb.Query", func(ctx context.Context) error {
			var err error
			result, err = r.client.Query(ctx, input)
			return err
		})
		if err != nil {
			return nil, apperrors.NewDatabaseError("list", err)
		}

		for _, rawItem := range result.Items {
			var item summaryItem
			if err := attributevalue.UnmarshalMap(rawItem, &item); err != nil {
				r.logger.Warn("Failed to unmarshal document summary", zap.Error(err))
				continue
			}
			summaries = append(summaries, ports.DocumentSummary{
				DocumentID: item.DocumentID,
				CreatedAt:  item.CreatedAt,
				UpdatedAt:  item.UpdatedAt,
			})
		}

		if result.LastEvaluatedKey == nil {
			break
		}
		startKey = result.LastEvaluatedKey
	}

	return summaries, nil
}
