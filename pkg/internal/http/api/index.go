package api

import (
	"fmt"
	"net/url"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/viper"
)

var routePrefix string

func MapControllers(app *fiber.App, baseURL string) {
	routePrefix = baseURL

	api := app.Group(baseURL).Name("api.")
	{
		questions := api.Group("/questions").Name("questions.")
		{
			questions.Get("/", listQuestions).Name("index")
			questions.Get("/:questionId", getQuestionDetail).Name("detail")
			questions.Post("/:questionId/vote", voteQuestion).Name("vote")
			questions.Get("/:questionId/results", getQuestionResults).Name("results")
			questions.Get("/:questionId/my-vote", getMyVote).Name("my-vote")
		}
	}
}

func questionsURL() string {
	return routePrefix + "/questions"
}

func questionURL(id uint) string {
	return fmt.Sprintf("%s/questions/%d", routePrefix, id)
}

func resultsURL(id uint) string {
	return fmt.Sprintf("%s/questions/%d/results", routePrefix, id)
}

func loginURL(next string) string {
	return fmt.Sprintf("%s?next=%s", viper.GetString("security.login_url"), url.QueryEscape(next))
}
