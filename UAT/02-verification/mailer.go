package verification

// Mailer is the dependency whose calls the tests verify.
type Mailer interface {
	Send(to, subject string) error
	Broadcast(subject string, to ...string) int
}

// Welcome sends a welcome mail to every user and announces the batch once.
// Users whose mail fails are returned.
func Welcome(m Mailer, users []string) []string {
	var failed []string

	for _, user := range users {
		if err := m.Send(user, "welcome"); err != nil {
			failed = append(failed, user)
		}
	}

	if len(users) > 0 {
		m.Broadcast("new users", users...)
	}

	return failed
}
