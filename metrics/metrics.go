package metrics

import (
	"expvar"
	"net/http"
	"runtime"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/prismbot/prism/cache"
)

var (
	// MessagesReceived counts all ever received messages
	MessagesReceived = expvar.NewInt("messages_received")

	// MessagesDeleted counts messages removed by the link policy gate
	MessagesDeleted = expvar.NewInt("messages_deleted")

	// TriggersFired counts trigger reminder replies sent
	TriggersFired = expvar.NewInt("triggers_fired")

	// PhraseMatches counts phrase rule hits
	PhraseMatches = expvar.NewInt("phrase_matches")

	// SlowmodeUpdates counts applied slow-mode changes
	SlowmodeUpdates = expvar.NewInt("slowmode_updates")

	// InvitesResolved counts successfully resolved invites
	InvitesResolved = expvar.NewInt("invites_resolved")

	// CoroutineCount counts all running coroutines
	CoroutineCount = expvar.NewInt("coroutine_count")

	// Uptime stores the timestamp of the bot's boot
	Uptime = expvar.NewInt("uptime")
)

// Init starts a http server on $address
func Init(address string) {
	cache.GetLogger().WithField("module", "metrics").Info("Listening on " + address)
	Uptime.Set(time.Now().Unix())
	go http.ListenAndServe(address, nil)
}

// OnReady listens for said discord event
func OnReady(session *discordgo.Session, event *discordgo.Ready) {
	go CollectRuntimeMetrics()
}

// OnMessageCreate listens for said discord event
func OnMessageCreate(session *discordgo.Session, event *discordgo.MessageCreate) {
	MessagesReceived.Add(1)
}

// CollectRuntimeMetrics counts coroutines
func CollectRuntimeMetrics() {
	for {
		CoroutineCount.Set(int64(runtime.NumGoroutine()))

		time.Sleep(15 * time.Second)
	}
}
