package db

import (
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbattribute"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbiface"
	"github.com/ericboles/AmazonSesBundle/pkg/common"
)

// SendsDynamoDB is an implementation of SendsStore interface that is
// capable of working with AWS DynamoDB. The table is keyed by
// (token, email) so the callback lookup is a single GetItem.
type SendsDynamoDB struct {
	TableName string
	Client    dynamodbiface.DynamoDBAPI
}

var _ common.SendsStore = (*SendsDynamoDB)(nil)

// NewSendsStore returns new instance of SendsDynamoDB
func NewSendsStore(table string, sess *session.Session) *SendsDynamoDB {
	return &SendsDynamoDB{
		Client:    dynamodb.New(sess),
		TableName: table,
	}
}

func (s *SendsDynamoDB) AddSend(record *common.SendRecord) error {
	record.Validate()

	i, err := dynamodbattribute.MarshalMap(record)
	if err != nil {
		return err
	}

	_, err = s.Client.PutItem(&dynamodb.PutItemInput{
		TableName: &s.TableName,
		Item:      i,
	})

	return err
}

func (s *SendsDynamoDB) GetSend(token, email string) (*common.SendRecord, error) {
	out, err := s.Client.GetItem(&dynamodb.GetItemInput{
		TableName: &s.TableName,
		Key: map[string]*dynamodb.AttributeValue{
			"token": {
				S: &token,
			},
			"email": {
				S: &email,
			},
		},
	})

	if err != nil {
		return nil, err
	}

	if len(out.Item) == 0 {
		return nil, common.ErrSendNotFound
	}

	record := &common.SendRecord{}
	err = dynamodbattribute.UnmarshalMap(out.Item, record)
	if err != nil {
		return nil, err
	}

	return record, nil
}

func (s *SendsDynamoDB) UpdateSend(record *common.SendRecord) error {
	// the whole item is replaced: the detail history only ever grows
	// in memory before the write, so a put keeps it intact
	i, err := dynamodbattribute.MarshalMap(record)
	if err != nil {
		return err
	}

	_, err = s.Client.PutItem(&dynamodb.PutItemInput{
		TableName: &s.TableName,
		Item:      i,
	})

	return err
}
