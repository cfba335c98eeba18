package dispatch

var subjects = map[EmailType]string{
	EmailWelcome:             "Welcome to LaunchMVP! 👋 Your journey starts here",
	EmailBillingConfirmation: "✓ Billing setup complete - LaunchMVP",
	EmailCancellation:        "Your subscription has been cancelled",
}

const accountDeletedSubject = "Your account has been deleted"

// Subject returns the fixed subject line for p.
func Subject(p Payload) string {
	if c, ok := p.(*CancellationPayload); ok && c.IsAccountDeletion {
		return accountDeletedSubject
	}
	return subjects[p.EmailType()]
}
