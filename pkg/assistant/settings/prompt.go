package settings

import (
	"fmt"
	"strings"

	"shopping-chat-be/pkg/assistant"
)

// buildSystemPrompt embeds profile, cards and memberships as read-only
// reference data. The model answers questions about them; it is never
// asked to change anything.
func buildSystemPrompt(sc *assistant.SettingsContext) string {
	var b strings.Builder
	b.WriteString("You are a helpful assistant for the settings page of a shopping application. ")
	b.WriteString("Provide concise, friendly responses about the user's profile, credit cards, and memberships. ")

	if sc.Profile != nil {
		first := stringField(sc.Profile, "firstName")
		last := stringField(sc.Profile, "lastName")
		email := stringField(sc.Profile, "email")
		if first != "" || last != "" {
			fmt.Fprintf(&b, "The user's name is %s %s. ", first, last)
		}
		if email != "" {
			fmt.Fprintf(&b, "Their email is %s. ", email)
		}
	}

	if sc.CreditCards != nil {
		describeUserCards(&b, sc.CreditCards.UserCards)
		describeAvailableCards(&b, sc.CreditCards.AvailableCards)
	}

	describeMemberships(&b, sc.Memberships)

	b.WriteString("\nGuidelines for your responses:\n")
	b.WriteString("1. Be concise and direct - provide helpful information about the user's settings.\n")
	b.WriteString("2. Answer questions about their profile, credit cards, and memberships accurately.\n")
	b.WriteString("3. Do not suggest making changes to settings directly - only provide information.\n")
	b.WriteString("4. Do not invent details that are not in the context; if a detail is missing, say you don't have it.\n")
	b.WriteString("5. If asked about a card or membership they don't have, acknowledge this and suggest alternatives if appropriate.\n")
	b.WriteString("6. Personalize your responses using their name occasionally.\n")

	return b.String()
}

func describeUserCards(b *strings.Builder, userCards []map[string]interface{}) {
	if len(userCards) == 0 {
		return
	}
	var names []string
	for _, card := range userCards {
		info := cardInfo(card)
		name := stringField(info, "cardName")
		if name == "" {
			continue
		}
		detail := name
		if issuer := stringField(info, "cardIssuer"); issuer != "" {
			detail += " from " + issuer
		}
		if network := stringField(info, "cardNetwork"); network != "" {
			detail += " (" + network + ")"
		}
		names = append(names, detail)
	}
	fmt.Fprintf(b, "The user has %d saved credit card(s)", len(userCards))
	if len(names) > 0 {
		fmt.Fprintf(b, ": %s", strings.Join(names, ", "))
	}
	b.WriteString(". ")
}

func describeAvailableCards(b *strings.Builder, availableCards []map[string]interface{}) {
	if len(availableCards) == 0 {
		return
	}
	fmt.Fprintf(b, "There are %d available credit card types that could be added. ", len(availableCards))
	var examples []string
	for _, card := range availableCards {
		if len(examples) == 3 {
			break
		}
		if name := stringField(mapField(card, "cardInfo"), "cardName"); name != "" {
			examples = append(examples, name)
		}
	}
	if len(examples) > 0 {
		fmt.Fprintf(b, "Examples include: %s. ", strings.Join(examples, ", "))
	}
}

func describeMemberships(b *strings.Builder, memberships []map[string]interface{}) {
	var active, inactive []string
	for _, m := range memberships {
		name := stringField(mapField(m, "membership_id"), "membership_name")
		if name == "" {
			continue
		}
		isActive, _ := m["active"].(bool)
		if !isActive {
			inactive = append(inactive, name)
			continue
		}
		tier := stringField(m, "tier")
		if tier != "" && tier != "Not a member" {
			active = append(active, fmt.Sprintf("%s (%s)", name, tier))
		} else {
			active = append(active, name)
		}
	}
	if len(active) > 0 {
		fmt.Fprintf(b, "The user has active memberships with: %s. ", strings.Join(active, ", "))
	}
	if len(inactive) > 0 {
		fmt.Fprintf(b, "The user previously had memberships with: %s (now inactive). ", strings.Join(inactive, ", "))
	}
}

// cardInfo digs out card details; saved cards nest them one level deeper
// than catalogue cards.
func cardInfo(card map[string]interface{}) map[string]interface{} {
	if nested := mapField(mapField(card, "creditCardId"), "cardInfo"); nested != nil {
		return nested
	}
	return mapField(card, "cardInfo")
}

func mapField(m map[string]interface{}, key string) map[string]interface{} {
	if m == nil {
		return nil
	}
	nested, _ := m[key].(map[string]interface{})
	return nested
}

func stringField(m map[string]interface{}, key string) string {
	if m == nil {
		return ""
	}
	s, _ := m[key].(string)
	return s
}
