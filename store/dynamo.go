package store

import (
	"context"
	"encoding/json"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbiface"
	"github.com/jsphweid/clarinetlint/model"
	"github.com/pkg/errors"
)

// Dynamo stores each report as one item keyed by PK = report id. The parts
// are kept as a JSON document in Body.
type Dynamo struct {
	client dynamodbiface.DynamoDBAPI
	table  string
}

func NewDynamo(endpoint, region, table string) (*Dynamo, error) {
	cfg := &aws.Config{Region: aws.String(region)}
	if endpoint != "" {
		cfg.Endpoint = aws.String(endpoint)
	}
	sess, err := session.NewSession(cfg)
	if err != nil {
		return nil, errors.Wrap(err, "Could not create a new DynamoDB session")
	}
	return NewDynamoWithClient(dynamodb.New(sess), table), nil
}

func NewDynamoWithClient(client dynamodbiface.DynamoDBAPI, table string) *Dynamo {
	return &Dynamo{client: client, table: table}
}

func (d *Dynamo) Put(ctx context.Context, r model.AnnotateResponse) error {
	body, err := json.Marshal(r.Parts)
	if err != nil {
		return errors.Wrap(err, "Could not encode report")
	}

	_, err = d.client.PutItemWithContext(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(d.table),
		Item: map[string]*dynamodb.AttributeValue{
			"PK":        {S: aws.String(r.ID)},
			"CreatedAt": {S: aws.String(r.CreatedAt.Format(time.RFC3339Nano))},
			"Variant":   {S: aws.String(r.Variant)},
			"Body":      {S: aws.String(string(body))},
		},
	})
	return errors.Wrap(err, "Error from DynamoDB")
}

func (d *Dynamo) Get(ctx context.Context, id string) (model.AnnotateResponse, error) {
	var res model.AnnotateResponse

	out, err := d.client.GetItemWithContext(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(d.table),
		Key: map[string]*dynamodb.AttributeValue{
			"PK": {S: aws.String(id)},
		},
	})
	if err != nil {
		return res, errors.Wrap(err, "Error from DynamoDB")
	}
	if len(out.Item) == 0 {
		return res, ErrNotFound
	}

	res.ID = aws.StringValue(out.Item["PK"].S)
	if v, ok := out.Item["Variant"]; ok {
		res.Variant = aws.StringValue(v.S)
	}
	if v, ok := out.Item["CreatedAt"]; ok {
		res.CreatedAt, err = time.Parse(time.RFC3339Nano, aws.StringValue(v.S))
		if err != nil {
			return res, errors.Wrapf(err, "Bad CreatedAt on report %s", id)
		}
	}
	if v, ok := out.Item["Body"]; ok {
		if err := json.Unmarshal([]byte(aws.StringValue(v.S)), &res.Parts); err != nil {
			return res, errors.Wrapf(err, "Could not decode report %s", id)
		}
	}
	return res, nil
}
