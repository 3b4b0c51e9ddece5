package admin

import "github.com/gofiber/fiber/v2"

func MapControllers(app *fiber.App, baseURL string) {
	admin := app.Group(baseURL).Name("admin.")
	{
		questions := admin.Group("/questions").Name("questions.")
		{
			questions.Get("/", listQuestions)
			questions.Post("/", createQuestion)
			questions.Get("/:questionId", getQuestion)
			questions.Put("/:questionId", updateQuestion)
			questions.Delete("/:questionId", deleteQuestion)

			questions.Post("/:questionId/choices", createChoice)
			questions.Put("/:questionId/choices/:choiceId", updateChoice)
			questions.Delete("/:questionId/choices/:choiceId", deleteChoice)
		}
	}
}
