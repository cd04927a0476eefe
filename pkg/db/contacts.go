package db

import (
	"log"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbattribute"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbiface"
	"github.com/ericboles/AmazonSesBundle/pkg/common"
)

// ContactsDynamoDB is an implementation of ContactsStore interface
// that is capable of working with AWS DynamoDB. The table is keyed
// by email with the contact id as the range key, so several contacts
// may share one address.
type ContactsDynamoDB struct {
	TableName string
	Client    dynamodbiface.DynamoDBAPI
}

var _ common.ContactsStore = (*ContactsDynamoDB)(nil)

// NewContactsStore returns new instance of ContactsDynamoDB
func NewContactsStore(table string, sess *session.Session) *ContactsDynamoDB {
	return &ContactsDynamoDB{
		Client:    dynamodb.New(sess),
		TableName: table,
	}
}

func (s *ContactsDynamoDB) AddContact(contact *common.Contact) error {
	contact.Validate()

	i, err := dynamodbattribute.MarshalMap(contact)
	if err != nil {
		return err
	}

	_, err = s.Client.PutItem(&dynamodb.PutItemInput{
		TableName: &s.TableName,
		Item:      i,
	})

	return err
}

func (s *ContactsDynamoDB) ContactsByEmail(email string) (contacts []*common.Contact, err error) {
	query := &dynamodb.QueryInput{
		TableName:              &s.TableName,
		KeyConditionExpression: aws.String(`email = :email`),
		ExpressionAttributeValues: map[string]*dynamodb.AttributeValue{
			":email": {
				S: &email,
			},
		},
	}

	err = s.Client.QueryPages(query, func(page *dynamodb.QueryOutput, more bool) bool {
		var items []*common.Contact
		err := dynamodbattribute.UnmarshalListOfMaps(page.Items, &items)
		if err != nil {
			// print the error and continue receiving pages
			log.Printf("Could not unmarshal AWS data. err=%v", err)
			return true
		}

		contacts = append(contacts, items...)
		// continue receiving pages (can be used to limit the number of pages)
		return true
	})

	return
}
