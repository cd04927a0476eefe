package main

import (
	"context"
	"log"
	"net/http"
	"os"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/awslabs/aws-lambda-go-api-proxy/httpadapter"
	"github.com/ericboles/AmazonSesBundle/pkg/callback"
	"github.com/ericboles/AmazonSesBundle/pkg/common"
	"github.com/ericboles/AmazonSesBundle/pkg/db"
)

var (
	handlerLambda *httpadapter.HandlerAdapter
)

// Response is an alias of events.APIGatewayProxyResponse
type Response events.APIGatewayProxyResponse

// Request is an alias of events.APIGatewayProxyRequest
type Request events.APIGatewayProxyRequest

// Handler is the main entry point to this lambda
func Handler(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	return handlerLambda.ProxyWithContext(ctx, req)
}

func main() {
	apiToken := os.Getenv("API_TOKEN")
	mailerDSN := os.Getenv("MAILER_DSN")
	sendsTableName := os.Getenv("SENDS_TABLE")
	contactsTableName := os.Getenv("CONTACTS_TABLE")
	suppressionsTableName := os.Getenv("SUPPRESSIONS_TABLE")

	sess, err := session.NewSession(&aws.Config{
		Region: aws.String(os.Getenv("AWS_REGION")),
	})

	if err != nil {
		log.Fatalf("Failed to create AWS session. err=%v", err)
	}

	processor := &callback.Processor{
		Sends:        db.NewSendsStore(sendsTableName, sess),
		Contacts:     db.NewContactsStore(contactsTableName, sess),
		Suppressions: db.NewSuppressionsStore(suppressionsTableName, sess),
		Translator:   &common.EnglishTranslator{},
		Client:       http.DefaultClient,
	}

	router := http.NewServeMux()
	resource := &callback.CallbackResource{
		APIToken:  apiToken,
		MailerDSN: mailerDSN,
		Processor: processor,
	}

	resource.Setup(router)
	handlerLambda = httpadapter.New(router)

	lambda.Start(Handler)
}
