package bot

// Canned replies, bilingual like the audience. These strings are the
// user-visible contract for every path that does not reach the completion
// provider.

// TextOnlyNotice is sent for any non-text inbound message.
const TextOnlyNotice = "مرحباً! أنا CorporateAI، مساعد أمّن للتأمين. أرسل لي رسالة نصية وسأساعدك! 🤖\n\nHello! I'm CorporateAI, Ammin's insurance assistant. Send me a text message and I'll help you! 🤖"

// OutOfDomainReply is sent when a message is not admitted into the
// insurance conversation.
const OutOfDomainReply = "أنا متخصص في مواضيع التأمين في لبنان فقط، خاصة لشركة أمّن للتأمين. هل يمكنك سؤالي عن شيء متعلق بالتأمين؟ 🏥🚗\n\nI'm specialized in Lebanese insurance topics only, particularly for Ammin insurance company. Could you please ask me something related to insurance? 🏥🚗"

// FallbackReplies are used when the completion provider is unavailable or
// fails; one is picked at random so repeated failures don't read robotic.
var FallbackReplies = []string{
	"مرحباً! أنا CorporateAI مساعد أمّن للتأمين. يمكنني مساعدتك في:\n🚗 تأمين السيارات\n🏥 التأمين الصحي\n💰 أسعار السوق\n\nHello! I'm CorporateAI, Ammin's insurance assistant. I can help you with car insurance, health insurance, and market prices in Lebanon! 😊",
	"أهلاً بك! لدي معلومات شاملة عن التأمين في لبنان وأسعار السيارات. ما الذي تريد معرفته؟\n\nWelcome! I have comprehensive information about insurance in Lebanon and car prices. What would you like to know? 🚗",
	"مرحباً! أمّن هي شركة رائدة في التأمين بلبنان. يمكنني مساعدتك في اختيار أفضل تأمين لاحتياجاتك!\n\nHello! Ammin is a leading insurance company in Lebanon. I can help you choose the best insurance for your needs! 💪",
}
