package db

import (
	"log"

	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbattribute"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbiface"
	"github.com/ericboles/AmazonSesBundle/pkg/common"
)

// SuppressionsDynamoDB is an implementation of SuppressionsStore
// interface that is capable of working with AWS DynamoDB
type SuppressionsDynamoDB struct {
	TableName string
	Client    dynamodbiface.DynamoDBAPI
}

var _ common.SuppressionsStore = (*SuppressionsDynamoDB)(nil)

// NewSuppressionsStore returns new instance of SuppressionsDynamoDB
func NewSuppressionsStore(table string, sess *session.Session) *SuppressionsDynamoDB {
	return &SuppressionsDynamoDB{
		Client:    dynamodb.New(sess),
		TableName: table,
	}
}

func (s *SuppressionsDynamoDB) Suppress(suppression *common.Suppression) error {
	i, err := dynamodbattribute.MarshalMap(suppression)
	if err != nil {
		return err
	}

	_, err = s.Client.PutItem(&dynamodb.PutItemInput{
		TableName: &s.TableName,
		Item:      i,
	})

	if err != nil {
		return err
	}

	log.Printf("Stored suppression row. email=%v channel=%v", suppression.Email, suppression.Channel)
	return nil
}

func (s *SuppressionsDynamoDB) Suppressions() (suppressions []*common.Suppression, err error) {
	scan := &dynamodb.ScanInput{
		TableName: &s.TableName,
	}

	err = s.Client.ScanPages(scan, func(page *dynamodb.ScanOutput, more bool) bool {
		var items []*common.Suppression
		err := dynamodbattribute.UnmarshalListOfMaps(page.Items, &items)
		if err != nil {
			// print the error and continue receiving pages
			log.Printf("Could not unmarshal AWS data. err=%v", err)
			return true
		}

		suppressions = append(suppressions, items...)
		// continue receiving pages (can be used to limit the number of pages)
		return true
	})

	return
}
