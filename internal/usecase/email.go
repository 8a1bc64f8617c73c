package usecase

import "fmt"

type Email struct {
	From    string
	To      []string
	Subject string
	Body    string
}

func welcomeEmail(user User) Email {
	body := fmt.Sprintf(`
		<h2>Welcome to DesignPro, %s!</h2>
		<p>Your account is ready. Pick a template and start creating.</p>
	`, user.Name)

	return Email{
		To:      []string{user.Email},
		Subject: "Welcome to DesignPro",
		Body:    body,
	}
}
