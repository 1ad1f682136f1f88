package mock

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Model is reported on every transcript
const Model = "openai/whisper-large-v3"

func (m *Service) owned(id, uid string) (*Transcript, bool) {
	transcript, ok := m.transcripts[id]
	if !ok || transcript.UID != uid {
		return nil, false
	}
	return transcript, true
}

func (m *Service) add(transcript *Transcript) *Transcript {
	transcript.ID = uuid.NewString()
	transcript.Model = Model
	transcript.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	if transcript.Words == nil {
		transcript.Words = []map[string]interface{}{}
	}
	m.transcripts[transcript.ID] = transcript
	m.order = append([]string{transcript.ID}, m.order...)
	return transcript
}

func (m *Service) listTranscripts(w http.ResponseWriter, uid string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ret := []*Transcript{}
	for _, id := range m.order {
		if transcript, ok := m.owned(id, uid); ok {
			ret = append(ret, transcript)
		}
	}
	writeJSON(w, http.StatusOK, ret)
}

func (m *Service) createTranscript(w http.ResponseWriter, r *http.Request, uid string) {
	input := &Transcript{}
	if err := json.NewDecoder(r.Body).Decode(input); err != nil || input.Text == "" {
		writeDetail(w, http.StatusUnprocessableEntity, "text is required")
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	writeJSON(w, http.StatusOK, m.add(&Transcript{UID: uid, Text: input.Text, Words: input.Words, Filename: input.Filename}))
}

func (m *Service) transcript(w http.ResponseWriter, r *http.Request, uid, id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	transcript, ok := m.owned(id, uid)
	switch r.Method {
	case http.MethodGet:
		if !ok {
			writeDetail(w, http.StatusNotFound, "Not found")
			return
		}
		writeJSON(w, http.StatusOK, transcript)
	case http.MethodPatch:
		if !ok {
			writeDetail(w, http.StatusNotFound, "Not found")
			return
		}
		update := map[string]*string{}
		if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
			writeDetail(w, http.StatusUnprocessableEntity, "invalid payload")
			return
		}
		if text := update["text"]; text != nil {
			transcript.Text = *text
		}
		if filename := update["filename"]; filename != nil {
			transcript.Filename = *filename
		}
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	case http.MethodDelete:
		if _, exists := m.transcripts[id]; exists && !ok {
			writeDetail(w, http.StatusNotFound, "Not found")
			return
		}
		delete(m.transcripts, id)
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// transcribe echoes uploaded audio as upper-cased text
func (m *Service) transcribe(w http.ResponseWriter, r *http.Request, uid string) {
	file, header, err := r.FormFile("audio")
	if err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, "audio is required")
		return
	}
	defer file.Close()
	data, err := io.ReadAll(file)
	if err != nil || len(data) == 0 {
		writeDetail(w, http.StatusBadRequest, "Empty audio upload")
		return
	}
	text := strings.ToUpper(string(data))
	m.mu.Lock()
	defer m.mu.Unlock()
	if id := r.FormValue("tid"); id != "" {
		transcript, ok := m.owned(id, uid)
		if !ok {
			writeDetail(w, http.StatusNotFound, "Transcript not found")
			return
		}
		transcript.Text = text
		transcript.Filename = header.Filename
		writeJSON(w, http.StatusOK, transcript)
		return
	}
	writeJSON(w, http.StatusOK, m.add(&Transcript{UID: uid, Text: text, Filename: header.Filename}))
}
