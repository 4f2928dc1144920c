package websocket

import "github.com/rs/zerolog/log"

// Hub maintains the set of active clients and delivers activity events to
// the connections belonging to each user.
type Hub struct {
	// Registered clients.
	clients map[*Client]bool

	// Register requests from the clients.
	Register chan *Client

	// Unregister requests from clients.
	Unregister chan *Client

	// A map of user IDs to the set of that user's open connections.
	connections map[string]map[*Client]bool

	// Targeted deliveries.
	deliveries chan delivery
}

type delivery struct {
	userID  string
	message []byte
}

// NewHub creates a new Hub.
func NewHub() *Hub {
	return &Hub{
		Register:    make(chan *Client),
		Unregister:  make(chan *Client),
		clients:     make(map[*Client]bool),
		connections: make(map[string]map[*Client]bool),
		deliveries:  make(chan delivery),
	}
}

// Run starts the Hub's message processing loop.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.clients[client] = true
			h.addConnection(client)
			log.Info().Int("total_clients", len(h.clients)).Msg("Dashboard client connected")
		case client := <-h.Unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.Send)
				h.removeConnection(client)
				log.Info().Int("total_clients", len(h.clients)).Msg("Dashboard client disconnected")
			}
		case d := <-h.deliveries:
			for client := range h.connections[d.userID] {
				select {
				case client.Send <- d.message:
				default:
					close(client.Send)
					delete(h.clients, client)
					h.removeConnection(client)
				}
			}
		}
	}
}

// BroadcastTo sends a message to every open connection of a single user.
func (h *Hub) BroadcastTo(userID string, message []byte) {
	h.deliveries <- delivery{userID: userID, message: message}
}

func (h *Hub) addConnection(client *Client) {
	if h.connections[client.UserID] == nil {
		h.connections[client.UserID] = make(map[*Client]bool)
	}
	h.connections[client.UserID][client] = true
}

func (h *Hub) removeConnection(client *Client) {
	if conns, ok := h.connections[client.UserID]; ok {
		delete(conns, client)
		if len(conns) == 0 {
			delete(h.connections, client.UserID)
		}
	}
}
